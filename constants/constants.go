package constants

import "os"

// Mm is one millimetre in PDF points.
const Mm = 72.0 / 25.4

// Page layout defaults. Lengths are in PDF points.
const (
	Margin           = 20 * Mm
	Columns          = 4
	RowHeight        = 65 * Mm
	StaffSpacing     = 1.6 * Mm
	StaffWidth       = 20 * Mm
	NoteWidth        = 3.8 * Mm
	NoteHeight       = 2.8 * Mm
	NoteTilt         = -20.0 // degrees
	CircleRadius     = 2.8 * Mm
	CircleGap        = 7 * Mm
	TopCircleOffset  = 10 * Mm
	TitleOffset      = 4 * Mm
	TitleFontSize    = 12.0
	FingeringSpacing = 10 * Mm
	RightInset       = 2 * Mm
	LineWidth        = 0.6
)

// KeysPerFingering is the number of keys shown for every fingering.
const KeysPerFingering = 8

const DefaultPage = "A4"

// DefaultDPI is the resolution used for PNG previews.
const DefaultDPI = 150

const (
	DemoJSONName = "demo_fingering.json"
	DemoPDFName  = "clarinet_chart_demo.pdf"
)

// EnvPrefix prefixes every environment variable read through viper.
const EnvPrefix = "FINGERCHART"

const DefaultServeAddr = ":8080"

// NOTE: keeps request bodies well below anything a chart could need
const MaxRequestBytes = 1 << 20

func GetOutputDir() string {
	path := os.Getenv("FINGERCHART_OUT_DIR")
	if path != "" {
		return path
	}
	return "."
}

func GetS3Endpoint() string {
	return os.Getenv("FINGERCHART_S3_ENDPOINT")
}

func GetAWSRegion() string {
	region := os.Getenv("AWS_REGION")
	if region != "" {
		return region
	}
	return "us-east-1"
}
