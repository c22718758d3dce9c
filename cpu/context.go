package cpu

// Reader is the memory capability needed to resolve operands.
type Reader interface {
	ReadWord(addr Address) Word
}

// Bus is a memory that can also be written. Writes only happen when an
// instruction is retired.
type Bus interface {
	Reader
	WriteWord(addr Address, w Word)
}

// Context is the state an operand is resolved against. It is passed and
// returned by value: resolution functions return the updated context rather
// than mutating the caller's copy, so a failed resolution leaves nothing
// behind.
type Context struct {
	Registers Registers
	mem       Reader
}

// NewContext creates a context reading memory from mem.
func NewContext(regs Registers, mem Reader) Context {
	return Context{Registers: regs, mem: mem}
}

// ReadWord reads memory without side effects.
func (ctx Context) ReadWord(addr Address) Word {
	if ctx.mem == nil {
		return UnsignedWord(0)
	}
	return ctx.mem.ReadWord(addr)
}

// NextStreamWord reads the word at PC and returns it together with a context
// whose PC has advanced by one word.
func (ctx Context) NextStreamWord() (Word, Context) {
	w := ctx.ReadWord(ctx.Registers.Address(PC))
	ctx.Registers.Increment(PC)
	return w, ctx
}
