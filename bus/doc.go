// Package bus defines the two-wire transport used to reach 24Cxx devices.
//
// The package does NOT talk to hardware on its own. Callers provide a Bus,
// either the periph.io adapter for Linux i2c-dev buses:
//
//	b, err := bus.OpenPeriph("/dev/i2c-1")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer b.Close()
//
// or their own implementation for USB bridges, microcontroller firmware, or
// the simulator package used in tests.
package bus
