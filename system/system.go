package system

import (
	"context"
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"chip8/audio"
	"chip8/clock"
	"chip8/config"
	"chip8/console"
	"chip8/cpu"
	"chip8/display"
	"chip8/keypad"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// instructions executed between context checks when running unthrottled
const unthrottledBatch = 1024

// System wires the CPU to its timers, display, keypad and beeper and owns
// the instruction flow.
type System struct {
	mu  sync.Mutex
	cpu *cpu.CPU

	display *display.Buffer
	keypad  *keypad.Keypad
	timers  *clock.Timers
	clock   *clock.Clock
	beeper  audio.Beeper

	cfg     config.Config
	log     *logrus.Logger
	console console.Console
	rom     string

	// keypad sequence number when LD Vx, K started waiting
	waitSeq uint64
}

// New builds the emulated machine. A nil console or beeper is replaced by a
// silent one.
func New(cfg config.Config, log *logrus.Logger, c console.Console, beeper audio.Beeper) *System {
	if c == nil {
		c = console.NewSimple(io.Discard)
	}
	if beeper == nil {
		beeper = audio.Silent{}
	}

	sys := &System{
		display: display.New(),
		keypad:  keypad.New(),
		beeper:  beeper,
		cfg:     cfg,
		log:     log,
		console: c,
	}
	sys.timers = clock.NewTimers(beeper)
	sys.clock = clock.New(sys.timers)
	sys.cpu = cpu.New(sys.display, sys.keypad, sys.timers)
	if cfg.TraceDepth > 0 {
		sys.cpu.SetTrace(cpu.NewTraceBuffer(cfg.TraceDepth))
	}
	return sys
}

// Step executes a single instruction.
func (sys *System) Step() error {
	sys.mu.Lock()
	defer sys.mu.Unlock()
	return sys.step()
}

// must be called with the lock held
func (sys *System) step() error {
	if sys.cpu.State == cpu.WaitingForKey {
		return nil
	}
	if sys.log.IsLevelEnabled(logrus.DebugLevel) {
		sys.logStep()
	}

	seq := sys.keypad.Seq()
	if err := sys.cpu.Step(); err != nil {
		return err
	}
	// presses that happened before LD Vx, K must not satisfy it
	if sys.cpu.State == cpu.WaitingForKey {
		sys.waitSeq = seq
	}
	return nil
}

func (sys *System) logStep() {
	word, err := sys.cpu.Fetch()
	if err != nil {
		return
	}
	sys.log.WithFields(logrus.Fields{
		"pc":     fmt.Sprintf("0x%03X", sys.cpu.PC),
		"opcode": fmt.Sprintf("%04X", word),
		"instr":  cpu.Disasm(word),
		"i":      fmt.Sprintf("0x%03X", sys.cpu.I),
		"sp":     sys.cpu.SP,
	}).Debug("CPU Step")
}

// Run executes the loaded program until ctx is cancelled, which returns nil,
// or the CPU faults, which returns the *cpu.Fault.
func (sys *System) Run(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	go sys.clock.Run(ctx)

	sys.log.WithFields(logrus.Fields{
		"rom":      sys.rom,
		"clock_hz": sys.cfg.ClockHz,
	}).Info("Starting CPU")

	if sys.cfg.ClockHz == 0 {
		for {
			if err := sys.run(ctx, unthrottledBatch); err != nil {
				return sys.halt(err)
			}
			if ctx.Err() != nil {
				return nil
			}
		}
	}

	p := newPacer(sys.cfg.ClockHz)
	ticker := time.NewTicker(time.Second / clock.Rate)
	defer ticker.Stop()

	for {
		if err := sys.run(ctx, p.next()); err != nil {
			return sys.halt(err)
		}
		if ctx.Err() != nil {
			return nil
		}
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
		}
	}
}

// pacer spreads a clock rate over the 60 Hz frames of a second, carrying
// the remainder from one frame to the next.
type pacer struct {
	hz    int
	carry int
}

func newPacer(hz int) *pacer {
	return &pacer{hz: hz}
}

// next returns the number of instructions to run in the coming frame.
func (p *pacer) next() int {
	p.carry += p.hz
	n := p.carry / clock.Rate
	p.carry %= clock.Rate
	return n
}

// run executes up to n instructions, parking on the keypad while the CPU
// waits for a key.
func (sys *System) run(ctx context.Context, n int) error {
	for i := 0; i < n; i++ {
		if ctx.Err() != nil {
			return nil
		}
		if sys.waiting() {
			if !sys.waitForKey(ctx) {
				return nil
			}
			continue
		}
		if err := sys.Step(); err != nil {
			return err
		}
	}
	return nil
}

func (sys *System) waiting() bool {
	sys.mu.Lock()
	defer sys.mu.Unlock()
	return sys.cpu.State == cpu.WaitingForKey
}

// waitForKey blocks until a key pressed after the wait began arrives or ctx
// is done.
func (sys *System) waitForKey(ctx context.Context) bool {
	sys.mu.Lock()
	since := sys.waitSeq
	sys.mu.Unlock()

	for {
		select {
		case <-ctx.Done():
			return false
		case ev := <-sys.keypad.Events():
			if ev.Seq <= since {
				continue
			}
			sys.mu.Lock()
			sys.cpu.KeyPressed(ev.Key)
			sys.mu.Unlock()
			return true
		}
	}
}

// halt reports a fault on the log and the console.
func (sys *System) halt(err error) error {
	fields := logrus.Fields{"rom": sys.rom}
	var fault *cpu.Fault
	if errors.As(err, &fault) {
		fields["pc"] = fmt.Sprintf("0x%03X", fault.Address)
		fields["opcode"] = fmt.Sprintf("%04X", fault.Word)
	}
	entry := sys.log.WithFields(fields)
	entry.WithError(err).Error("CPU halted")
	for _, line := range sys.TraceLines() {
		entry.Error(line)
	}

	_ = sys.console.WriteConsole(fmt.Sprintf("Halted: %v", err))
	return err
}

// TraceLines returns the most recently executed instructions, oldest first.
func (sys *System) TraceLines() []string {
	sys.mu.Lock()
	defer sys.mu.Unlock()
	if sys.cpu.Trace() == nil {
		return nil
	}
	return sys.cpu.Trace().Lines()
}

// Registers returns a copy of the processor state.
func (sys *System) Registers() cpu.Registers {
	sys.mu.Lock()
	defer sys.mu.Unlock()
	return sys.cpu.Registers()
}

// DumpState renders the registers and the trace for diagnostics.
func (sys *System) DumpState() string {
	sys.mu.Lock()
	regs := sys.cpu.DumpRegisters()
	sys.mu.Unlock()

	var sb strings.Builder
	sb.WriteString(regs)
	sb.WriteByte('\n')
	for _, line := range sys.TraceLines() {
		sb.WriteString(line)
		sb.WriteByte('\n')
	}
	return sb.String()
}

func (sys *System) Display() *display.Buffer { return sys.display }

func (sys *System) Keypad() *keypad.Keypad { return sys.keypad }

func (sys *System) Timers() *clock.Timers { return sys.timers }

// Close silences and releases the beeper.
func (sys *System) Close() error {
	return sys.beeper.Close()
}
