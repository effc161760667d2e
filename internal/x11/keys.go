package x11

import (
	"fmt"

	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil"
	"github.com/BurntSushi/xgbutil/keybind"
	"github.com/BurntSushi/xgbutil/xevent"
)

// KeyCombo is a parsed key binding.
type KeyCombo struct {
	Mods    uint16
	Keycode xproto.Keycode
}

// ParseKeyCombo resolves a binding string such as "Mod4-Return" against the
// current keyboard mapping.
func (c *Connection) ParseKeyCombo(s string) (KeyCombo, error) {
	mods, keycodes, err := keybind.ParseString(c.XUtil, s)
	if err != nil {
		return KeyCombo{}, fmt.Errorf("invalid key combo %q: %w", s, err)
	}
	return KeyCombo{Mods: mods, Keycode: keycodes[0]}, nil
}

// GrabKeys grabs every combo on win, including the lock-modifier variants
// listed in xevent.IgnoreMods.
func (c *Connection) GrabKeys(win xproto.Window, combos []KeyCombo) error {
	for _, combo := range combos {
		if err := keybind.GrabChecked(c.XUtil, win, combo.Mods, combo.Keycode); err != nil {
			return fmt.Errorf("failed to grab key %s: %w", keybind.ModifierString(combo.Mods), err)
		}
	}
	return nil
}

// configureIgnoreMods sets xevent.IgnoreMods to every combination of the
// lock modifiers and returns their union.
func configureIgnoreMods(xu *xgbutil.XUtil) uint16 {
	// Always ignore CapsLock.
	caps := uint16(xproto.ModMaskLock)

	numLock := modMaskForKeysym(xu, "Num_Lock")
	scrollLock := modMaskForKeysym(xu, "Scroll_Lock")

	base := []uint16{caps}
	if numLock != 0 && numLock != caps {
		base = append(base, numLock)
	}
	if scrollLock != 0 && scrollLock != caps && scrollLock != numLock {
		base = append(base, scrollLock)
	}

	var union uint16
	ignore := []uint16{0}
	for subset := 1; subset < (1 << len(base)); subset++ {
		var mask uint16
		for bit := range base {
			if subset&(1<<bit) != 0 {
				mask |= base[bit]
			}
		}
		union |= mask
		ignore = append(ignore, mask)
	}

	xevent.IgnoreMods = ignore
	return union
}

func modMaskForKeysym(xu *xgbutil.XUtil, keysym string) uint16 {
	for _, keycode := range keybind.StrToKeycodes(xu, keysym) {
		if mask := keybind.ModGet(xu, keycode); mask != 0 {
			return mask
		}
	}
	return 0
}
