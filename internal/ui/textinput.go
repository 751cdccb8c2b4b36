package ui

import (
	"image/color"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// TextInput is the single-line command box at the bottom of the scope.
type TextInput struct {
	Text     string
	IsActive bool
	X, Y     int
	Width    int
	Height   int
	OnSubmit func(string)
}

func NewTextInput(x, y, width, height int, onSubmit func(string)) *TextInput {
	return &TextInput{
		X:        x,
		Y:        y,
		Width:    width,
		Height:   height,
		OnSubmit: onSubmit,
	}
}

func (ti *TextInput) Update() {
	if !ti.IsActive {
		return
	}
	ti.apply(ebiten.AppendInputChars(nil),
		inpututil.IsKeyJustPressed(ebiten.KeyBackspace),
		inpututil.IsKeyJustPressed(ebiten.KeyEnter))
}

// apply feeds one frame of keyboard input to the box.
func (ti *TextInput) apply(chars []rune, backspace, enter bool) {
	ti.Text += string(chars)

	if backspace && len(ti.Text) > 0 {
		r := []rune(ti.Text)
		ti.Text = string(r[:len(r)-1])
	}

	if enter {
		if ti.OnSubmit != nil {
			ti.OnSubmit(strings.TrimSpace(ti.Text))
		}
		ti.Text = ""
		ti.IsActive = false
	}
}

func (ti *TextInput) Draw(screen *ebiten.Image) {
	x, y := float32(ti.X), float32(ti.Y)
	w, h := float32(ti.Width), float32(ti.Height)

	bgColor := color.RGBA{50, 50, 50, 255}
	if ti.IsActive {
		bgColor = color.RGBA{80, 80, 80, 255}
	}
	vector.DrawFilledRect(screen, x, y, w, h, bgColor, false)
	vector.StrokeRect(screen, x, y, w, h, 1, color.White, false)

	displayTxt := ti.Text
	if ti.IsActive {
		displayTxt += "_"
	}
	ebitenutil.DebugPrintAt(screen, displayTxt, ti.X+5, ti.Y+(ti.Height-16)/2)
}

// IsClicked checks if the mouse click is within the text input bounds
func (ti *TextInput) IsClicked(mouseX, mouseY int) bool {
	return mouseX >= ti.X && mouseX <= ti.X+ti.Width &&
		mouseY >= ti.Y && mouseY <= ti.Y+ti.Height
}
