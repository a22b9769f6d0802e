// Package trace records the bus transactions issued by a Device.
//
// Wrap any bus.Bus with NewBus to capture every write and read, its payload
// and whether the device acknowledged it:
//
//	rec, err := trace.NewFileRecorder("session.etrace")
//	if err != nil {
//	    return err
//	}
//	defer rec.Close()
//
//	dev, err := eeprom.New(trace.NewBus(b, rec), 0, chip.T24C64)
//
// Events are stored as a stream of CBOR items with integer keys. Use
// NewReader to iterate over a recorded file, optionally with a Filter.
//
// Recorders:
//   - FileRecorder: CBOR file, safe for concurrent use
//   - SlogRecorder: debug-level slog records, useful on a console
//   - MultiRecorder: fan-out to several recorders
//   - NoopRecorder: discards everything
package trace
