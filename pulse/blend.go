package pulse

import "github.com/oliverbestmann/webgpu/wgpu"

var BlendStateAlphaBlendingStraight = wgpu.BlendStateAlphaBlending
var BlendStateAlphaBlendingPremultiplied = wgpu.BlendStatePremultipliedAlphaBlending

// BlendStateDefault defines the default blend state. You can
// overwrite this to set a different default blend state
var BlendStateDefault = BlendStateAlphaBlendingStraight
