package theme

// Terminal-compatible color constants using ANSI standard colors
const (
	ColorWhite        = "#FFFFFF" // primary text
	ColorBrightBlack  = "#808080" // secondary text, disabled affordances
	ColorBrightBlue   = "#5C7CFA" // primary accent
	ColorBrightCyan   = "#22B8CF" // secondary accent, info
	ColorBrightGreen  = "#51CF66" // success, online
	ColorBrightYellow = "#FFD43B" // prompts, in progress
	ColorBrightRed    = "#FF6B6B" // error, offline

	ColorFileImage    = "#74C0FC"
	ColorFileDocument = "#51CF66"
	ColorFileArchive  = "#FCC419"
	ColorFileVideo    = "#FF8787"
	ColorFileAudio    = "#DA77F2"
	ColorFileText     = "#74C0FC"
	ColorFileCode     = "#B197FC"
)

// severity values mirror messaging.Severity
const (
	severityInfo = iota
	severitySuccess
	severityError
)

// CategoryColor returns the color for a key category
func CategoryColor(category string) string {
	switch category {
	case "image":
		return ColorFileImage
	case "document":
		return ColorFileDocument
	case "archive":
		return ColorFileArchive
	case "video":
		return ColorFileVideo
	case "audio":
		return ColorFileAudio
	case "text":
		return ColorFileText
	case "code":
		return ColorFileCode
	default:
		return ColorWhite
	}
}

// SeverityColor returns the color for a notification severity
func SeverityColor(severity int) string {
	switch severity {
	case severityError:
		return ColorBrightRed
	case severitySuccess:
		return ColorBrightGreen
	default:
		return ColorBrightCyan
	}
}

// SeverityIcon returns the glyph for a notification severity
func SeverityIcon(severity int) string {
	switch severity {
	case severityError:
		return "✗"
	case severitySuccess:
		return "✓"
	default:
		return "ℹ"
	}
}
