package simulator

import (
	"fmt"
	"os"

	"github.com/moffa90/go-24cxx/bus"
	"github.com/moffa90/go-24cxx/chip"
	"github.com/moffa90/go-24cxx/protocol"
)

// Erased is the value of every byte of a fresh chip.
const Erased = 0xFF

// Transaction is one bus transaction observed by the simulated chip.
type Transaction struct {
	// Op is "write" or "read"
	Op string

	// Addr is the 7-bit device address
	Addr uint8

	// Data is a copy of the bytes written or returned
	Data []byte

	// Stop records whether a write ended with a stop condition
	Stop bool

	// Acked is false when the chip answered with a NACK
	Acked bool
}

// Chip is an in-memory 24Cxx part attached to a simulated bus.
//
// It answers to one device address per block, wraps page writes within the
// physical page, keeps an internal address pointer for sequential and
// current-address reads and NACKs every transaction for a configurable number
// of polls after each page write.
type Chip struct {
	profile chip.Profile
	base    uint8

	// physical memory; amend only through write() and Poke()
	data []byte

	// the next physical offset a read will access
	pointer uint32

	busyPolls int
	busy      int

	failWhen func(Transaction) bool

	transactions []Transaction
}

// Option configures a Chip.
type Option func(*Chip)

// WithBusyPolls sets how many transactions are NACKed after each page write,
// emulating the internal write cycle.
func WithBusyPolls(n int) Option {
	return func(c *Chip) {
		if n >= 0 {
			c.busyPolls = n
		}
	}
}

// WithFailure makes the chip NACK every transaction for which fail returns true.
func WithFailure(fail func(Transaction) bool) Option {
	return func(c *Chip) {
		c.failWhen = fail
	}
}

// New creates a simulated chip of variant v answering to the base address
// selected by chipSelect. Memory starts erased.
func New(v chip.Variant, chipSelect uint8, opts ...Option) (*Chip, error) {
	p := chip.ProfileFor(v)
	base, err := protocol.BaseAddress(p, chipSelect)
	if err != nil {
		return nil, err
	}

	c := &Chip{
		profile: p,
		base:    base,
		data:    make([]byte, p.Capacity),
	}
	for i := range c.data {
		c.data[i] = Erased
	}

	for _, opt := range opts {
		opt(c)
	}

	return c, nil
}

// Profile returns the profile of the simulated part.
func (c *Chip) Profile() chip.Profile {
	return c.profile
}

// BaseAddress returns the 7-bit base device address.
func (c *Chip) BaseAddress() uint8 {
	return c.base
}

// Write implements bus.Bus.
func (c *Chip) Write(addr uint8, p []byte, stop bool) error {
	tx := Transaction{Op: "write", Addr: addr, Data: append([]byte(nil), p...), Stop: stop}

	block, ok := c.decodeDevice(addr)
	if !ok || !c.ready(tx) {
		return c.nack(tx)
	}

	// addressing only, used for acknowledge polling
	if len(p) == 0 {
		return c.ack(tx)
	}

	width := c.profile.WordAddressWidth
	if len(p) < width {
		return c.nack(tx)
	}

	address, ok := c.physical(block, p[:width])
	if !ok {
		return c.nack(tx)
	}

	payload := p[width:]
	if len(payload) == 0 {
		c.pointer = address
		return c.ack(tx)
	}

	c.write(address, payload)
	c.busy = c.busyPolls
	return c.ack(tx)
}

// Read implements bus.Bus.
func (c *Chip) Read(addr uint8, p []byte) error {
	tx := Transaction{Op: "read", Addr: addr}

	if _, ok := c.decodeDevice(addr); !ok || !c.ready(tx) {
		return c.nack(tx)
	}

	for i := range p {
		p[i] = c.data[c.pointer]
		c.pointer = (c.pointer + 1) % c.profile.Capacity
	}

	tx.Data = append([]byte(nil), p...)
	return c.ack(tx)
}

// write stores payload starting at the physical offset address. Like the real
// part, bytes that run past the end of the page wrap to the start of the same
// page.
func (c *Chip) write(address uint32, payload []byte) {
	pageSize := c.profile.PageSize
	pageStart := address - address%pageSize
	offset := address - pageStart

	for _, b := range payload {
		c.data[pageStart+offset] = b
		offset = (offset + 1) % pageSize
	}
	c.pointer = pageStart + offset
}

// decodeDevice returns the block selected by addr, or false when the chip
// does not answer to addr.
func (c *Chip) decodeDevice(addr uint8) (uint32, bool) {
	if addr < c.base {
		return 0, false
	}
	block := uint32(addr - c.base)
	return block, block < c.profile.Blocks
}

// physical converts a block and word address into a physical offset, or
// false when the word address lies beyond the part.
func (c *Chip) physical(block uint32, word []byte) (uint32, bool) {
	var local uint32
	for _, b := range word {
		local = local<<8 | uint32(b)
	}
	offset := block<<(8*len(word)) | local
	return offset, offset < c.profile.Capacity
}

// Locate returns the physical offset that the logical address reaches through
// protocol.Resolve, or false when the resolved device address is not one of
// this chip's blocks.
func (c *Chip) Locate(address uint32) (uint32, bool) {
	r := protocol.Resolve(c.profile, c.base, address)
	block, ok := c.decodeDevice(r.BusAddress)
	if !ok {
		return 0, false
	}
	return c.physical(block, r.WordAddressBytes())
}

func (c *Chip) ready(tx Transaction) bool {
	if c.failWhen != nil && c.failWhen(tx) {
		return false
	}
	if c.busy > 0 {
		c.busy--
		return false
	}
	return true
}

func (c *Chip) ack(tx Transaction) error {
	tx.Acked = true
	c.transactions = append(c.transactions, tx)
	return nil
}

func (c *Chip) nack(tx Transaction) error {
	c.transactions = append(c.transactions, tx)
	return &bus.NackError{Op: tx.Op, Addr: tx.Addr}
}

// Transactions returns every transaction seen since creation or the last
// ResetTransactions call.
func (c *Chip) Transactions() []Transaction {
	return c.transactions
}

// ResetTransactions clears the transaction record.
func (c *Chip) ResetTransactions() {
	c.transactions = nil
}

// PageWrites returns the acknowledged transactions that carried data.
func (c *Chip) PageWrites() []Transaction {
	var writes []Transaction
	for _, tx := range c.transactions {
		if tx.Op == "write" && tx.Acked && len(tx.Data) > c.profile.WordAddressWidth {
			writes = append(writes, tx)
		}
	}
	return writes
}

// Bytes returns a copy of the physical memory contents.
func (c *Chip) Bytes() []byte {
	return append([]byte(nil), c.data...)
}

// Peek returns the byte stored at a physical offset.
func (c *Chip) Peek(address uint32) byte {
	return c.data[address]
}

// Poke stores a byte at a physical offset without any bus activity.
func (c *Chip) Poke(address uint32, v byte) {
	c.data[address] = v
}

// Fill sets every byte to v.
func (c *Chip) Fill(v byte) {
	for i := range c.data {
		c.data[i] = v
	}
}

// Load replaces the memory contents with the raw image at path. A shorter
// image leaves the remaining bytes untouched.
func (c *Chip) Load(path string) error {
	img, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("load image: %w", err)
	}
	if len(img) > len(c.data) {
		return fmt.Errorf("image is %d bytes, %s holds %d", len(img), c.profile.Variant, len(c.data))
	}
	copy(c.data, img)
	return nil
}

// Save writes the memory contents to path as a raw image.
func (c *Chip) Save(path string) error {
	if err := os.WriteFile(path, c.data, 0644); err != nil {
		return fmt.Errorf("save image: %w", err)
	}
	return nil
}

// Compile-time interface satisfaction check.
var _ bus.Bus = (*Chip)(nil)
