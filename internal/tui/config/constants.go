package config

// Layout constants
const (
	// Panel layout
	BucketPanelWidthRatio = 0.35
	MinPanelHeight        = 6
	MinPanelWidth         = 12
	ReservedRows          = 9 // header, footer and notification area
	UploadPanelRows       = 9

	// Row rendering
	BucketNameTruncateLength = 40
	ObjectKeyTruncateLength  = 60

	// Inputs
	BucketNameCharLimit = 63
	ObjectKeyCharLimit  = 1024
	InputWidth          = 28

	// Dialog dimensions
	DialogDefaultWidth    = 50
	DialogLargeWidth      = 70
	FilePickerDialogWidth = 80
	FilePickerHeight      = 15

	ProgressBarWidth = 36
)
