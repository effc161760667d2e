package x11

import (
	"fmt"
	"slices"

	"github.com/BurntSushi/xgb"
	"github.com/BurntSushi/xgb/randr"
	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil/ewmh"
)

// Area is a rectangle in root window coordinates.
type Area struct {
	X      int
	Y      int
	Width  int
	Height int
}

// PrimaryArea returns the bounds of the primary RandR output. Without a
// primary output the first active CRTC is used, and without RandR the
// whole root window.
func (c *Connection) PrimaryArea() (Area, error) {
	area, err := c.primaryOutputArea()
	if err == nil {
		return area, nil
	}

	x, y, w, h, rootErr := c.RootGeometry()
	if rootErr != nil {
		return Area{}, rootErr
	}
	return Area{X: x, Y: y, Width: w, Height: h}, nil
}

func (c *Connection) primaryOutputArea() (Area, error) {
	xc := c.XUtil.Conn()
	if err := randr.Init(xc); err != nil {
		return Area{}, fmt.Errorf("randr init failed: %w", err)
	}

	resources, err := randr.GetScreenResources(xc, c.Root).Reply()
	if err != nil {
		return Area{}, fmt.Errorf("failed to get screen resources: %w", err)
	}

	if primary, err := randr.GetOutputPrimary(xc, c.Root).Reply(); err == nil && primary.Output != 0 {
		info, err := randr.GetOutputInfo(xc, primary.Output, resources.ConfigTimestamp).Reply()
		if err == nil && info.Crtc != 0 {
			if area, ok := crtcArea(xc, info.Crtc, resources.ConfigTimestamp); ok {
				return area, nil
			}
		}
	}

	for _, crtc := range resources.Crtcs {
		if area, ok := crtcArea(xc, crtc, resources.ConfigTimestamp); ok {
			return area, nil
		}
	}
	return Area{}, fmt.Errorf("no active outputs")
}

func crtcArea(xc *xgb.Conn, crtc randr.Crtc, ts xproto.Timestamp) (Area, bool) {
	info, err := randr.GetCrtcInfo(xc, crtc, ts).Reply()
	if err != nil {
		return Area{}, false
	}
	// Skip disabled CRTCs
	if info.Width == 0 || info.Height == 0 || len(info.Outputs) == 0 {
		return Area{}, false
	}
	return Area{
		X:      int(info.X),
		Y:      int(info.Y),
		Width:  int(info.Width),
		Height: int(info.Height),
	}, true
}

// IsDock reports whether a window declares itself a dock or panel.
func (c *Connection) IsDock(windowID xproto.Window) bool {
	types, err := ewmh.WmWindowTypeGet(c.XUtil, windowID)
	if err != nil {
		return false
	}
	return slices.Contains(types, "_NET_WM_WINDOW_TYPE_DOCK")
}

// DockStruts returns the screen edges a dock reserves. Docks that only set
// _NET_WM_STRUT reserve their edges along the full root window.
func (c *Connection) DockStruts(windowID xproto.Window) (*ewmh.WmStrutPartial, bool) {
	if sp, err := ewmh.WmStrutPartialGet(c.XUtil, windowID); err == nil {
		return sp, true
	}

	s, err := ewmh.WmStrutGet(c.XUtil, windowID)
	if err != nil {
		return nil, false
	}
	_, _, rootWidth, rootHeight, err := c.RootGeometry()
	if err != nil {
		return nil, false
	}
	return &ewmh.WmStrutPartial{
		Left:         s.Left,
		Right:        s.Right,
		Top:          s.Top,
		Bottom:       s.Bottom,
		LeftStartY:   0,
		LeftEndY:     uint(rootHeight - 1),
		RightStartY:  0,
		RightEndY:    uint(rootHeight - 1),
		TopStartX:    0,
		TopEndX:      uint(rootWidth - 1),
		BottomStartX: 0,
		BottomEndX:   uint(rootWidth - 1),
	}, true
}

type dockStruts struct {
	left   int
	right  int
	top    int
	bottom int
}

// ShrinkByStruts removes from area the parts reserved by dock struts.
// Struts are given in root window coordinates; only the ones overlapping
// area count. The result is never smaller than 1x1.
func ShrinkByStruts(area Area, rootWidth, rootHeight int, struts []*ewmh.WmStrutPartial) Area {
	var acc dockStruts
	for _, sp := range struts {
		updateStruts(area, rootWidth, rootHeight, sp, &acc)
	}

	area.X += acc.left
	area.Y += acc.top
	area.Width -= acc.left + acc.right
	area.Height -= acc.top + acc.bottom

	area.Width = max(area.Width, 1)
	area.Height = max(area.Height, 1)
	return area
}

func updateStruts(area Area, rootWidth, rootHeight int, sp *ewmh.WmStrutPartial, acc *dockStruts) {
	ax1, ay1 := area.X, area.Y
	ax2, ay2 := area.X+area.Width, area.Y+area.Height

	// Top strut: y=[0,Top), x=[TopStartX,TopEndX]
	if sp.Top > 0 {
		isect := intersectionSize(ax1, ay1, ax2, ay2, int(sp.TopStartX), 0, int(sp.TopEndX)+1, int(sp.Top))
		acc.top = max(acc.top, isect.h)
	}

	// Bottom strut: y=[rootHeight-Bottom,rootHeight), x=[BottomStartX,BottomEndX]
	if sp.Bottom > 0 {
		isect := intersectionSize(ax1, ay1, ax2, ay2, int(sp.BottomStartX), rootHeight-int(sp.Bottom), int(sp.BottomEndX)+1, rootHeight)
		acc.bottom = max(acc.bottom, isect.h)
	}

	// Left strut: x=[0,Left), y=[LeftStartY,LeftEndY]
	if sp.Left > 0 {
		isect := intersectionSize(ax1, ay1, ax2, ay2, 0, int(sp.LeftStartY), int(sp.Left), int(sp.LeftEndY)+1)
		acc.left = max(acc.left, isect.w)
	}

	// Right strut: x=[rootWidth-Right,rootWidth), y=[RightStartY,RightEndY]
	if sp.Right > 0 {
		isect := intersectionSize(ax1, ay1, ax2, ay2, rootWidth-int(sp.Right), int(sp.RightStartY), rootWidth, int(sp.RightEndY)+1)
		acc.right = max(acc.right, isect.w)
	}
}

type intersection struct {
	w int
	h int
}

func intersectionSize(ax1, ay1, ax2, ay2, bx1, by1, bx2, by2 int) intersection {
	x1 := max(ax1, bx1)
	y1 := max(ay1, by1)
	x2 := min(ax2, bx2)
	y2 := min(ay2, by2)

	if x2 <= x1 || y2 <= y1 {
		return intersection{}
	}
	return intersection{w: x2 - x1, h: y2 - y1}
}
