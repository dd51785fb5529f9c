package screen

// UIIcon identifies UI-specific icons.
type UIIcon int

// UIIcon constants.
const (
	UIIconHelpTitle UIIcon = iota
	UIIconNavigation
	UIIconStatusPane
	UIIconLogPane
	UIIconCommitTree
	UIIconViewingTools
	UIIconRepoOps
	UIIconBackgroundRefresh
	UIIconFilterSearch
	UIIconStatusIndicators
	UIIconStatusClean
	UIIconStatusDirty
	UIIconHelpNavigation
	UIIconShellCompletion
	UIIconConfiguration
	UIIconTip
	UIIconListSelect
)

type iconProvider interface {
	GetUIIcon(icon UIIcon) string
}

type defaultIconProvider struct{}

func (p *defaultIconProvider) GetUIIcon(icon UIIcon) string {
	return ""
}

var currentIconProvider iconProvider = &defaultIconProvider{}

// SetIconProvider sets the global icon provider.
func SetIconProvider(provider iconProvider) {
	currentIconProvider = provider
}

func uiIcon(icon UIIcon) string {
	return currentIconProvider.GetUIIcon(icon)
}

func iconWithSpace(icon string) string {
	if icon == "" {
		return ""
	}
	return icon + " "
}

func iconPrefix(icon UIIcon, showIcons bool) string {
	if !showIcons {
		return ""
	}
	return iconWithSpace(uiIcon(icon))
}

func labelWithIcon(icon UIIcon, label string, showIcons bool) string {
	return iconPrefix(icon, showIcons) + label
}

func statusIndicator(clean, showIcons bool) string {
	if showIcons {
		if clean {
			if icon := uiIcon(UIIconStatusClean); icon != "" {
				return icon
			}
			return " "
		}
		if icon := uiIcon(UIIconStatusDirty); icon != "" {
			return icon
		}
		return "~"
	}
	if clean {
		return " "
	}
	return "~"
}

func aheadIndicator(showIcons bool) string {
	return "↑"
}

func behindIndicator(showIcons bool) string {
	return "↓"
}

func arrowUp(showIcons bool) string {
	if !showIcons {
		return "Up"
	}
	return "↑"
}

func arrowDown(showIcons bool) string {
	if !showIcons {
		return "Down"
	}
	return "↓"
}

func arrowLeft(showIcons bool) string {
	if !showIcons {
		return "Left"
	}
	return "←"
}

func arrowRight(showIcons bool) string {
	if !showIcons {
		return "Right"
	}
	return "→"
}

func disclosureIndicator(collapsed, showIcons bool) string {
	if !showIcons {
		if collapsed {
			return ">"
		}
		return "v"
	}
	if collapsed {
		return "▶"
	}
	return "▼"
}
