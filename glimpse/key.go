package glimpse

//go:generate go tool stringer -type=Key -trimprefix=Key

type Key uint16

const (
	KeyUnknown Key = iota
	KeyEscape
	KeyEnter
	KeyTab
	KeyBackspace
	KeyDelete
	KeySpace
	KeyLeft
	KeyRight
	KeyUp
	KeyDown
	KeyHome
	KeyEnd
	KeyShift
	KeyControl
	KeyAlt
)
