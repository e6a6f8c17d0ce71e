package platform

import (
	"errors"
	"fmt"
	"strings"

	"rotaclock/internal/logger"
)

// ErrLoginItemUnsupported indicates the OS has no start-at-login mechanism we know of.
var ErrLoginItemUnsupported = errors.New("start at login is not supported on this platform")

// LoginItem registers the widget to start when the user logs in.
type LoginItem struct {
	name     string
	execPath string
	baseDir  func() (string, error)
	log      *logger.Logger
}

// NewLoginItem describes the login entry for execPath.
func NewLoginItem(appName, execPath string, log *logger.Logger) (*LoginItem, error) {
	if strings.TrimSpace(appName) == "" {
		return nil, fmt.Errorf("login item: app name is empty")
	}
	if strings.TrimSpace(execPath) == "" {
		return nil, fmt.Errorf("login item: exec path is empty")
	}
	return &LoginItem{
		name:     strings.TrimSpace(appName),
		execPath: execPath,
		baseDir:  defaultLoginDir,
		log:      log,
	}, nil
}

// Apply registers or removes the entry so that it matches enabled.
func (item *LoginItem) Apply(enabled bool) error {
	if item.Enabled() == enabled {
		return nil
	}

	var err error
	if enabled {
		err = item.register()
	} else {
		err = item.unregister()
	}
	if err != nil {
		return err
	}
	item.log.With("enabled", enabled).Info("start at login updated")
	return nil
}

func loginSlug(appName string) string {
	name := strings.ToLower(strings.TrimSpace(appName))
	if name == "" {
		name = "rotaclock"
	}
	return strings.ReplaceAll(name, " ", "-")
}

func desktopEntry(appName, execPath string) string {
	execLine := execPath
	if strings.Contains(execLine, " ") && !strings.HasPrefix(execLine, `"`) {
		execLine = `"` + execLine + `"`
	}

	return fmt.Sprintf(`[Desktop Entry]
Type=Application
Name=%s
Comment=Orientation-driven clock widget
Exec=%s
X-GNOME-Autostart-enabled=true
Terminal=false
`, appName, execLine)
}

func launchAgentLabel(appName string) string {
	return "com.rotaclock." + loginSlug(appName)
}

func launchAgentPlist(label, execPath string) string {
	return fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<!DOCTYPE plist PUBLIC "-//Apple//DTD PLIST 1.0//EN" "http://www.apple.com/DTDs/PropertyList-1.0.dtd">
<plist version="1.0">
<dict>
	<key>Label</key>
	<string>%s</string>
	<key>ProgramArguments</key>
	<array>
		<string>%s</string>
	</array>
	<key>RunAtLoad</key>
	<true/>
</dict>
</plist>
`, xmlEscape(label), xmlEscape(execPath))
}

var xmlReplacer = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
	"'", "&apos;",
)

func xmlEscape(value string) string {
	return xmlReplacer.Replace(value)
}

func quoteWindowsPath(execPath string) string {
	return `"` + strings.Trim(execPath, `"`) + `"`
}
