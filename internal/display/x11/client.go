package x11

import (
	"bytes"
	"fmt"
	"image"
	"image/png"
	"os"
	"strings"
	"time"

	xgb "github.com/BurntSushi/xgb"
	xproto "github.com/BurntSushi/xgb/xproto"
	xtest "github.com/BurntSushi/xgb/xtest"
	xgbutil "github.com/BurntSushi/xgbutil"
	ewmh "github.com/BurntSushi/xgbutil/ewmh"
	icccm "github.com/BurntSushi/xgbutil/icccm"
	keybind "github.com/BurntSushi/xgbutil/keybind"
	xgraphics "github.com/BurntSushi/xgbutil/xgraphics"

	display "github.com/easel-agent/cli/internal/display"
	logger "github.com/easel-agent/cli/internal/logger"
)

// Client wraps an X11 connection and provides input injection, screen capture
// and window management through XTEST and EWMH.
type Client struct {
	xu      *xgbutil.XUtil
	conn    *xgb.Conn
	screen  *xproto.ScreenInfo
	display string
}

// Character mapping tables for X11 key names
var (
	shiftChars = map[rune]string{
		'!': "exclam", '@': "at", '#': "numbersign", '$': "dollar",
		'%': "percent", '^': "asciicircum", '&': "ampersand", '*': "asterisk",
		'(': "parenleft", ')': "parenright", '_': "underscore", '+': "plus",
		'{': "braceleft", '}': "braceright", '|': "bar", ':': "colon",
		'"': "quotedbl", '<': "less", '>': "greater", '?': "question",
		'~': "asciitilde",
	}

	punctuationChars = map[rune]string{
		'.': "period", ',': "comma", ';': "semicolon", '\'': "apostrophe",
		'/': "slash", '\\': "backslash", '-': "minus", '=': "equal",
		'[': "bracketleft", ']': "bracketright", '`': "grave",
	}
)

// NewClient creates a new X11 client connection
func NewClient(displayName string) (*Client, error) {
	oldStderr := os.Stderr
	devNull, devErr := os.OpenFile(os.DevNull, os.O_WRONLY, 0)
	if devErr == nil {
		os.Stderr = devNull
	}

	xu, err := xgbutil.NewConnDisplay(displayName)

	if devErr == nil {
		os.Stderr = oldStderr
		_ = devNull.Close()
	}

	if err != nil {
		logger.Error("Failed to connect to X11 display", "display", displayName, "error", err)
		return nil, fmt.Errorf("failed to connect to X11 display %s: %w", displayName, err)
	}

	if err := xtest.Init(xu.Conn()); err != nil {
		logger.Error("Failed to initialize XTEST extension", "error", err)
		return nil, fmt.Errorf("failed to initialize XTEST extension: %w", err)
	}

	keybind.Initialize(xu)

	return &Client{
		xu:      xu,
		conn:    xu.Conn(),
		screen:  xproto.Setup(xu.Conn()).DefaultScreen(xu.Conn()),
		display: displayName,
	}, nil
}

// Close closes the X11 connection
func (c *Client) Close() {
	if c.conn != nil {
		c.conn.Close()
	}
}

// GetScreenDimensions returns the screen width and height
func (c *Client) GetScreenDimensions() (int, int) {
	return int(c.screen.WidthInPixels), int(c.screen.HeightInPixels)
}

// CaptureScreen captures a screenshot of the entire screen or a region
func (c *Client) CaptureScreen(x, y, width, height int) (image.Image, error) {
	if width == 0 || height == 0 {
		width = int(c.screen.WidthInPixels)
		height = int(c.screen.HeightInPixels)
		x = 0
		y = 0
	}

	root := c.screen.Root

	ximg, err := xgraphics.NewDrawable(c.xu, xproto.Drawable(root))
	if err != nil {
		return nil, fmt.Errorf("failed to create drawable: %w", err)
	}

	subImg := ximg.SubImage(image.Rect(x, y, x+width, y+height))

	return subImg, nil
}

// CaptureScreenBytes captures a screenshot and returns it as PNG bytes
func (c *Client) CaptureScreenBytes(x, y, width, height int) ([]byte, error) {
	img, err := c.CaptureScreen(x, y, width, height)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("failed to encode PNG: %w", err)
	}

	return buf.Bytes(), nil
}

// GetCursorPosition returns the current cursor position
func (c *Client) GetCursorPosition() (int, int, error) {
	root := c.screen.Root

	pointer, err := xproto.QueryPointer(c.conn, root).Reply()
	if err != nil {
		return 0, 0, fmt.Errorf("failed to query pointer: %w", err)
	}

	return int(pointer.RootX), int(pointer.RootY), nil
}

// MoveMouse moves the cursor to the specified absolute coordinates
func (c *Client) MoveMouse(x, y int) error {
	root := c.screen.Root

	err := xproto.WarpPointerChecked(
		c.conn,
		xproto.WindowNone,
		root,
		0, 0,
		0, 0,
		int16(x), int16(y),
	).Check()

	if err != nil {
		return fmt.Errorf("failed to move mouse: %w", err)
	}

	c.conn.Sync()

	return nil
}

func buttonCode(button string) (byte, error) {
	switch button {
	case "left":
		return 1, nil
	case "middle":
		return 2, nil
	case "right":
		return 3, nil
	default:
		return 0, fmt.Errorf("invalid button: %s (must be 'left', 'middle', or 'right')", button)
	}
}

// ClickMouse performs a mouse click at the current cursor position
func (c *Client) ClickMouse(button string, clicks int) error {
	root := c.screen.Root

	code, err := buttonCode(button)
	if err != nil {
		return err
	}

	for i := 0; i < clicks; i++ {
		cookie := xtest.FakeInputChecked(c.conn, xproto.ButtonPress, code, 0, root, 0, 0, 0)
		if err := cookie.Check(); err != nil {
			return fmt.Errorf("failed to send button press: %w", err)
		}
		time.Sleep(50 * time.Millisecond)

		cookie = xtest.FakeInputChecked(c.conn, xproto.ButtonRelease, code, 0, root, 0, 0, 0)
		if err := cookie.Check(); err != nil {
			return fmt.Errorf("failed to send button release: %w", err)
		}

		if i < clicks-1 {
			time.Sleep(100 * time.Millisecond)
		}
	}

	c.conn.Sync()
	return nil
}

// PressMouse presses and holds a mouse button. Used together with MoveMouse
// and ReleaseMouse to drag shapes across the canvas.
func (c *Client) PressMouse(button string) error {
	root := c.screen.Root

	code, err := buttonCode(button)
	if err != nil {
		return err
	}

	cookie := xtest.FakeInputChecked(c.conn, xproto.ButtonPress, code, 0, root, 0, 0, 0)
	if err := cookie.Check(); err != nil {
		return fmt.Errorf("failed to send button press: %w", err)
	}

	c.conn.Sync()
	return nil
}

// ReleaseMouse releases a held mouse button
func (c *Client) ReleaseMouse(button string) error {
	root := c.screen.Root

	code, err := buttonCode(button)
	if err != nil {
		return err
	}

	cookie := xtest.FakeInputChecked(c.conn, xproto.ButtonRelease, code, 0, root, 0, 0, 0)
	if err := cookie.Check(); err != nil {
		return fmt.Errorf("failed to send button release: %w", err)
	}

	c.conn.Sync()
	return nil
}

// charToKeyInfo maps a character to its X11 key string and shift requirement
type charToKeyInfo struct {
	keyStr     string
	needsShift bool
}

// mapCharToKey converts a character to its X11 key name and shift requirement
func mapCharToKey(char rune) charToKeyInfo {
	if char >= 'A' && char <= 'Z' {
		return charToKeyInfo{
			keyStr:     strings.ToLower(string(char)),
			needsShift: true,
		}
	}

	if shiftChar, ok := shiftChars[char]; ok {
		return charToKeyInfo{
			keyStr:     shiftChar,
			needsShift: true,
		}
	}

	if punctChar, ok := punctuationChars[char]; ok {
		return charToKeyInfo{
			keyStr:     punctChar,
			needsShift: false,
		}
	}

	switch char {
	case '\n':
		return charToKeyInfo{keyStr: "Return", needsShift: false}
	case '\t':
		return charToKeyInfo{keyStr: "Tab", needsShift: false}
	case ' ':
		return charToKeyInfo{keyStr: "space", needsShift: false}
	default:
		return charToKeyInfo{keyStr: string(char), needsShift: false}
	}
}

// TypeText types the given text with a configurable delay between keystrokes (in milliseconds)
func (c *Client) TypeText(text string, delayMs int) error {
	root := c.screen.Root
	baseDelay := time.Duration(delayMs) * time.Millisecond

	for _, char := range text {
		keyInfo := mapCharToKey(char)

		keycodes := keybind.StrToKeycodes(c.xu, keyInfo.keyStr)
		if len(keycodes) == 0 {
			logger.Debug("No keycode found for character", "char", string(char), "keyStr", keyInfo.keyStr)
			continue
		}

		keycode := keycodes[0]

		if err := c.typeKeyWithShift(root, keycode, keyInfo.needsShift, baseDelay); err != nil {
			return err
		}
	}

	c.conn.Sync()
	return nil
}

// typeKeyWithShift types a single key, optionally with shift modifier
func (c *Client) typeKeyWithShift(root xproto.Window, keycode xproto.Keycode, needsShift bool, delay time.Duration) error {
	if needsShift {
		shiftKeycodes := keybind.StrToKeycodes(c.xu, "Shift_L")
		if len(shiftKeycodes) > 0 {
			_ = xtest.FakeInput(c.conn, xproto.KeyPress, byte(shiftKeycodes[0]), 0, root, 0, 0, 0)
			time.Sleep(delay)
		}
	}

	_ = xtest.FakeInput(c.conn, xproto.KeyPress, byte(keycode), 0, root, 0, 0, 0)
	time.Sleep(delay)

	_ = xtest.FakeInput(c.conn, xproto.KeyRelease, byte(keycode), 0, root, 0, 0, 0)
	time.Sleep(delay)

	if needsShift {
		shiftKeycodes := keybind.StrToKeycodes(c.xu, "Shift_L")
		if len(shiftKeycodes) > 0 {
			_ = xtest.FakeInput(c.conn, xproto.KeyRelease, byte(shiftKeycodes[0]), 0, root, 0, 0, 0)
			time.Sleep(delay)
		}
	}

	return nil
}

// modifierMap translates common modifier spellings to X11 keysym names
var modifierMap = map[string]string{
	"ctrl":    "Control_L",
	"control": "Control_L",
	"alt":     "Alt_L",
	"shift":   "Shift_L",
	"super":   "Super_L",
	"meta":    "Meta_L",
	"win":     "Super_L",
	"cmd":     "Super_L",
}

func (c *Client) keycodeFor(key string) (xproto.Keycode, error) {
	name := strings.TrimSpace(key)
	if xName, ok := modifierMap[strings.ToLower(name)]; ok {
		name = xName
	}

	keycodes := keybind.StrToKeycodes(c.xu, name)
	if len(keycodes) == 0 {
		return 0, fmt.Errorf("no keycode found for key: %s", key)
	}
	return keycodes[0], nil
}

// HoldKey presses and holds a key (e.g. "shift" while dragging a circle)
func (c *Client) HoldKey(key string) error {
	keycode, err := c.keycodeFor(key)
	if err != nil {
		return err
	}

	_ = xtest.FakeInput(c.conn, xproto.KeyPress, byte(keycode), 0, c.screen.Root, 0, 0, 0)
	c.conn.Sync()
	return nil
}

// ReleaseKey releases a held key
func (c *Client) ReleaseKey(key string) error {
	keycode, err := c.keycodeFor(key)
	if err != nil {
		return err
	}

	_ = xtest.FakeInput(c.conn, xproto.KeyRelease, byte(keycode), 0, c.screen.Root, 0, 0, 0)
	c.conn.Sync()
	return nil
}

// SendKeyCombo sends a key combination (e.g., "ctrl+s", "super+l")
func (c *Client) SendKeyCombo(combo string) error {
	root := c.screen.Root

	combo = strings.ReplaceAll(combo, "-", "+")
	parts := strings.Split(combo, "+")

	if len(parts) == 0 {
		return fmt.Errorf("invalid key combination: %s", combo)
	}

	modifiers := parts[:len(parts)-1]
	mainKey := parts[len(parts)-1]

	var modKeycodes []xproto.Keycode
	for _, mod := range modifiers {
		keycode, err := c.keycodeFor(mod)
		if err != nil {
			return fmt.Errorf("no keycode found for modifier: %s", mod)
		}
		modKeycodes = append(modKeycodes, keycode)
	}

	mainKeycode, err := c.keycodeFor(mainKey)
	if err != nil {
		return err
	}

	for _, keycode := range modKeycodes {
		_ = xtest.FakeInput(c.conn, xproto.KeyPress, byte(keycode), 0, root, 0, 0, 0)
		time.Sleep(10 * time.Millisecond)
	}

	_ = xtest.FakeInput(c.conn, xproto.KeyPress, byte(mainKeycode), 0, root, 0, 0, 0)
	time.Sleep(50 * time.Millisecond)

	_ = xtest.FakeInput(c.conn, xproto.KeyRelease, byte(mainKeycode), 0, root, 0, 0, 0)
	time.Sleep(10 * time.Millisecond)

	for i := len(modKeycodes) - 1; i >= 0; i-- {
		_ = xtest.FakeInput(c.conn, xproto.KeyRelease, byte(modKeycodes[i]), 0, root, 0, 0, 0)
		time.Sleep(10 * time.Millisecond)
	}

	c.conn.Sync()
	return nil
}

// windowTitle reads the EWMH name of a window, falling back to ICCCM
func (c *Client) windowTitle(win xproto.Window) string {
	name, err := ewmh.WmNameGet(c.xu, win)
	if err == nil && name != "" {
		return name
	}

	name, err = icccm.WmNameGet(c.xu, win)
	if err != nil {
		return ""
	}
	return name
}

// windowRect returns the absolute geometry of a window
func (c *Client) windowRect(win xproto.Window) (display.Region, error) {
	geom, err := xproto.GetGeometry(c.conn, xproto.Drawable(win)).Reply()
	if err != nil {
		return display.Region{}, fmt.Errorf("failed to get window geometry: %w", err)
	}

	trans, err := xproto.TranslateCoordinates(c.conn, win, c.screen.Root, 0, 0).Reply()
	if err != nil {
		return display.Region{}, fmt.Errorf("failed to translate window coordinates: %w", err)
	}

	return display.Region{
		X:      int(trans.DstX),
		Y:      int(trans.DstY),
		Width:  int(geom.Width),
		Height: int(geom.Height),
	}, nil
}

// FindWindow locates the first managed window whose title contains the given
// substring (case-insensitive)
func (c *Client) FindWindow(titleSubstring string) (*display.Window, error) {
	clients, err := ewmh.ClientListGet(c.xu)
	if err != nil {
		return nil, fmt.Errorf("failed to list windows: %w", err)
	}

	needle := strings.ToLower(titleSubstring)
	for _, win := range clients {
		title := c.windowTitle(win)
		if title == "" || !strings.Contains(strings.ToLower(title), needle) {
			continue
		}

		rect, err := c.windowRect(win)
		if err != nil {
			logger.Debug("Skipping window with unreadable geometry", "window", win, "error", err)
			continue
		}

		return &display.Window{
			ID:    uint32(win),
			Title: title,
			Rect:  rect,
		}, nil
	}

	return nil, fmt.Errorf("no window with title containing %q", titleSubstring)
}

// ActivateWindow raises, focuses and maximizes a window
func (c *Client) ActivateWindow(w *display.Window) error {
	win := xproto.Window(w.ID)

	if err := ewmh.ActiveWindowReq(c.xu, win); err != nil {
		return fmt.Errorf("failed to activate window: %w", err)
	}

	err := ewmh.WmStateReqExtra(c.xu, win, ewmh.StateAdd,
		"_NET_WM_STATE_MAXIMIZED_VERT", "_NET_WM_STATE_MAXIMIZED_HORZ", 2)
	if err != nil {
		logger.Debug("Failed to maximize window", "window", w.ID, "error", err)
	}

	c.conn.Sync()

	rect, err := c.windowRect(win)
	if err == nil {
		w.Rect = rect
	}

	return nil
}

// CloseWindow asks the window manager to close a window
func (c *Client) CloseWindow(w *display.Window) error {
	if err := ewmh.CloseWindow(c.xu, xproto.Window(w.ID)); err != nil {
		return fmt.Errorf("failed to close window: %w", err)
	}
	c.conn.Sync()
	return nil
}
