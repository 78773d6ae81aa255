package renderer

import (
	"log/slog"

	"phong-engine/input"
	"phong-engine/internal/window"
	"phong-engine/lighting"
)

var glfwKeys = map[int]input.Key{
	window.KeyW:      input.KeyW,
	window.KeyA:      input.KeyA,
	window.KeyS:      input.KeyS,
	window.KeyD:      input.KeyD,
	window.KeyUp:     input.KeyUp,
	window.KeyDown:   input.KeyDown,
	window.KeyLeft:   input.KeyLeft,
	window.KeyRight:  input.KeyRight,
	window.KeyEscape: input.KeyEscape,
	window.KeyTab:    input.KeyTab,
	window.Key1:      input.Key1,
	window.Key2:      input.Key2,
	window.Key3:      input.Key3,
}

var variantKeys = map[input.Key]lighting.Variant{
	input.Key1: lighting.VariantAmbient,
	input.Key2: lighting.VariantDiffuse,
	input.Key3: lighting.VariantPhong,
}

// bindInput routes window callbacks to the dispatcher. Movement keys act on
// press and auto-repeat; the remaining keys only on press.
func (re *RenderEngine) bindInput() {
	re.window.SetKeyCallback(func(code int, pressed, repeat bool) {
		if !pressed {
			return
		}
		key, ok := glfwKeys[code]
		if !ok {
			return
		}
		if re.input.KeyDown(key) || repeat {
			return
		}

		switch key {
		case input.KeyEscape:
			re.window.SetShouldClose(true)
		case input.KeyTab:
			re.CaptureCursor(!re.cursorCaptured)
		default:
			if v, ok := variantKeys[key]; ok && v != re.evaluator.Variant {
				if err := re.SetVariant(v); err != nil {
					slog.Error("Failed to switch variant", "variant", v, "error", err)
				}
			}
		}
	})

	re.window.SetCursorCallback(func(x, y float64) {
		if re.cursorCaptured {
			re.input.CursorMoved(x, y)
		}
	})

	re.window.SetScrollCallback(func(_, yoff float64) {
		re.input.Scrolled(float32(yoff))
	})
}
