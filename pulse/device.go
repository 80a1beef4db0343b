package pulse

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"runtime"
	"strings"

	"github.com/oliverbestmann/webgpu/wgpu"
)

var forceFallbackAdapter = os.Getenv("WGPU_FORCE_FALLBACK_ADAPTER") == "1"

var powerPreference = parsePowerPreference(os.Getenv("WGPU_POWER_PREFERENCE"))

func init() {
	runtime.LockOSThread()

	switch strings.ToUpper(os.Getenv("WGPU_LOG_LEVEL")) {
	case "OFF":
		wgpu.SetLogLevel(wgpu.LogLevelOff)
	case "ERROR":
		wgpu.SetLogLevel(wgpu.LogLevelError)
	case "WARN":
		wgpu.SetLogLevel(wgpu.LogLevelWarn)
	case "INFO":
		wgpu.SetLogLevel(wgpu.LogLevelInfo)
	case "DEBUG":
		wgpu.SetLogLevel(wgpu.LogLevelDebug)
	case "TRACE":
		wgpu.SetLogLevel(wgpu.LogLevelTrace)
	}
}

func parsePowerPreference(value string) wgpu.PowerPreference {
	switch strings.ToLower(value) {
	case "low":
		return wgpu.PowerPreferenceLowPower
	case "high":
		return wgpu.PowerPreferenceHighPerformance
	default:
		return wgpu.PowerPreferenceUndefined
	}
}

// Context encapsulates the low level state of the webgpu context,
// this includes the Device, Surface and active Adapter.
// The Surface is nil for a headless context.
type Context struct {
	*wgpu.Device
	*wgpu.Queue
	Surface *wgpu.Surface
	Adapter *wgpu.Adapter

	samplers *samplerCache
}

// New creates a Context that can render to the surface described by sd.
func New(sd *wgpu.SurfaceDescriptor) (*Context, error) {
	if sd == nil {
		return nil, errors.New("surface descriptor must not be nil")
	}

	return newContext(sd)
}

// NewHeadless creates a Context without a surface. Use it with an Offscreen target.
func NewHeadless() (*Context, error) {
	return newContext(nil)
}

func newContext(sd *wgpu.SurfaceDescriptor) (st *Context, err error) {
	defer func() {
		if err != nil && st != nil {
			st.Release()
			st = nil
		}
	}()

	st = &Context{}

	// create the webgpu instance
	instance := wgpu.CreateInstance(nil)
	defer instance.Release()

	if sd != nil {
		// create a Surface based on the window
		st.Surface = instance.CreateSurface(sd)
	}

	// create an adapter that can render to the Surface
	st.Adapter, err = instance.RequestAdapter(&wgpu.RequestAdapterOptions{
		ForceFallbackAdapter: forceFallbackAdapter,
		PowerPreference:      powerPreference,
		CompatibleSurface:    st.Surface,
	})

	if err != nil {
		return st, fmt.Errorf("request adapter: %w", err)
	}

	info := st.Adapter.GetInfo()
	slog.Info("Using adapter",
		slog.String("device", info.Device),
		slog.String("description", info.Description),
		slog.Any("backend", info.BackendType),
		slog.Any("type", info.AdapterType),
	)

	// we use the texture resolution limits of the adapter, so we
	// can support images the size of the swapchain.
	limits := requiredLimits(st.Adapter.GetLimits())

	st.Device, err = st.Adapter.RequestDevice(&wgpu.DeviceDescriptor{
		Label:          "Device",
		RequiredLimits: &limits,
	})

	if err != nil {
		return st, fmt.Errorf("request device: %w", err)
	}

	st.Queue = st.Device.GetQueue()

	return st, nil
}

// requiredLimits returns the default limits raised to at least the
// texture dimensions the adapter supports.
func requiredLimits(adapter wgpu.Limits) wgpu.Limits {
	limits := wgpu.DefaultLimits()
	limits.MaxTextureDimension1D = max(limits.MaxTextureDimension1D, adapter.MaxTextureDimension1D)
	limits.MaxTextureDimension2D = max(limits.MaxTextureDimension2D, adapter.MaxTextureDimension2D)
	limits.MaxTextureDimension3D = max(limits.MaxTextureDimension3D, adapter.MaxTextureDimension3D)
	limits.MaxTextureArrayLayers = max(limits.MaxTextureArrayLayers, adapter.MaxTextureArrayLayers)
	return limits
}

func (d *Context) Release() {
	if d.samplers != nil {
		// samplers must go before the device that owns them
		d.samplers.Purge()
		d.samplers = nil
	}

	if d.Queue != nil {
		d.Queue.Release()
		d.Queue = nil
	}

	if d.Device != nil {
		d.Device.Release()
		d.Device = nil
	}

	if d.Adapter != nil {
		d.Adapter.Release()
		d.Adapter = nil
	}

	if d.Surface != nil {
		d.Surface.Release()
		d.Surface = nil
	}
}
