package x11

import (
	"testing"

	"github.com/BurntSushi/xgbutil/ewmh"
	"github.com/stretchr/testify/assert"
)

func TestShrinkByStruts(t *testing.T) {
	screen := Area{Width: 1920, Height: 1080}

	tests := []struct {
		name      string
		area      Area
		rootWidth int
		struts    []*ewmh.WmStrutPartial
		want      Area
	}{
		{
			name: "no docks",
			area: screen,
			want: screen,
		},
		{
			name:   "top bar",
			area:   screen,
			struts: []*ewmh.WmStrutPartial{{Top: 24, TopStartX: 0, TopEndX: 1919}},
			want:   Area{Y: 24, Width: 1920, Height: 1056},
		},
		{
			name: "top and bottom bars, widest wins",
			area: screen,
			struts: []*ewmh.WmStrutPartial{
				{Top: 20, TopEndX: 1919},
				{Top: 30, TopEndX: 959},
				{Bottom: 40, BottomEndX: 1919},
			},
			want: Area{Y: 30, Width: 1920, Height: 1010},
		},
		{
			name:   "left and right panels",
			area:   screen,
			struts: []*ewmh.WmStrutPartial{{Left: 100, LeftEndY: 1079, Right: 50, RightEndY: 1079}},
			want:   Area{X: 100, Width: 1770, Height: 1080},
		},
		{
			name:      "strut on another output is ignored",
			area:      Area{X: 1920, Width: 1280, Height: 1024},
			rootWidth: 3200,
			struts:    []*ewmh.WmStrutPartial{{Top: 24, TopEndX: 1919}},
			want:      Area{X: 1920, Width: 1280, Height: 1024},
		},
		{
			name:   "never collapses",
			area:   Area{Width: 100, Height: 100},
			struts: []*ewmh.WmStrutPartial{{Top: 500, TopEndX: 99}},
			want:   Area{Y: 100, Width: 100, Height: 1},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rootWidth := tt.rootWidth
			if rootWidth == 0 {
				rootWidth = 1920
			}
			got := ShrinkByStruts(tt.area, rootWidth, 1080, tt.struts)
			assert.Equal(t, tt.want, got)
		})
	}
}
