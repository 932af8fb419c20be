package layout

import "fmt"

// Channel names shared by both instruments.
const (
	Time          = "time"
	PacketCount   = "packet_count"
	Position      = "position"
	MagneticField = "magnetic_field"
	SubunitID     = "subunit_id"
)

// Telescope names the i-th HEPD telescope channel.
func Telescope(i int) string { return fmt.Sprintf("telescope_%d", i) }

// Detector names the i-th MEPD detector channel.
func Detector(i int) string { return fmt.Sprintf("detector_%d", i) }

const (
	telescopeBins = 40
	detectorBins  = 64
)

// block2 carries the spacecraft housekeeping, identical for both instruments.
var block2Entries = []Entry{
	{Name: MagneticField, Block: Block2, Start: 0, Length: 8},
	{Name: Position, Block: Block2, Start: 16, Length: 3},
}

// HEPDLayout returns the record layout of the high-energy instrument.
func HEPDLayout() Layout {
	entries := []Entry{
		{Name: PacketCount, Block: Block1, Start: 5, Length: 1},
		{Name: Time, Block: Block1, Start: 7, Length: 1},
		{Name: Telescope(0), Block: Block1, Start: 9, Length: telescopeBins},
		{Name: Telescope(1), Block: Block1, Start: 50, Length: telescopeBins},
		{Name: Telescope(2), Block: Block1, Start: 91, Length: telescopeBins},
	}
	return Layout{
		Instrument:  HEPD,
		Block1Width: 131,
		Block2Width: 19,
		Entries:     append(entries, block2Entries...),
	}
}

// MEPDLayout returns the record layout of the medium-energy instrument.
func MEPDLayout() Layout {
	entries := []Entry{
		{Name: SubunitID, Block: Block1, Start: 4, Length: 1},
		{Name: PacketCount, Block: Block1, Start: 5, Length: 1},
		{Name: Time, Block: Block1, Start: 10, Length: 1},
		{Name: Detector(0), Block: Block1, Start: 13, Length: detectorBins},
		{Name: Detector(1), Block: Block1, Start: 81, Length: detectorBins},
		{Name: Detector(2), Block: Block1, Start: 149, Length: detectorBins},
		{Name: Detector(3), Block: Block1, Start: 217, Length: detectorBins},
	}
	return Layout{
		Instrument:  MEPD,
		Block1Width: 281,
		Block2Width: 19,
		Entries:     append(entries, block2Entries...),
	}
}

// ForInstrument returns the built-in layout of inst.
func ForInstrument(inst Instrument) (Layout, error) {
	switch inst {
	case HEPD:
		return HEPDLayout(), nil
	case MEPD:
		return MEPDLayout(), nil
	}
	return Layout{}, &ConfigurationError{Instrument: inst, Reason: "no built-in layout"}
}

// Required lists the channels the processing chain reads from inst.
func Required(inst Instrument) []string {
	names := []string{Time, PacketCount, Position, MagneticField}
	switch inst {
	case HEPD:
		for i := 0; i < 3; i++ {
			names = append(names, Telescope(i))
		}
	case MEPD:
		names = append(names, SubunitID)
		for i := 0; i < 4; i++ {
			names = append(names, Detector(i))
		}
	}
	return names
}
