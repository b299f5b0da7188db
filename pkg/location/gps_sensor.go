package location

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"strings"
	"sync"
	"time"

	"github.com/adrianmo/go-nmea"
	"github.com/benmeehan/locality-agent/pkg/geo"
	"github.com/tarm/serial"
)

// PortOpener opens the byte stream a GPS receiver writes NMEA sentences to.
type PortOpener func() (io.ReadCloser, error)

// GPSSensor reads position fixes from a GPS device connected via serial port.
type GPSSensor struct {
	open PortOpener
	now  func() time.Time

	mu      sync.Mutex
	last    Fix
	hasLast bool
}

// NewGPSSensor creates a sensor for the serial device at port. An empty port
// means no receiver is attached and every request reports the capability as unavailable.
func NewGPSSensor(port string, baudRate int) *GPSSensor {
	var open PortOpener
	if port != "" {
		open = func() (io.ReadCloser, error) {
			p, err := serial.OpenPort(&serial.Config{Name: port, Baud: baudRate})
			if err != nil {
				return nil, err
			}
			return p, nil
		}
	}
	return NewGPSSensorWithOpener(open)
}

// NewGPSSensorWithOpener creates a sensor that reads from whatever open returns.
func NewGPSSensorWithOpener(open PortOpener) *GPSSensor {
	return &GPSSensor{
		open: open,
		now:  time.Now,
	}
}

// Position returns a fix no older than opts.MaximumAge, reading a fresh one
// from the receiver if needed. The read is abandoned after opts.Timeout.
func (g *GPSSensor) Position(ctx context.Context, opts SensorOptions) (Fix, error) {
	if g.open == nil {
		return Fix{}, fmt.Errorf("%w: no GPS device configured", ErrCapabilityUnavailable)
	}

	if fix, ok := g.cached(opts.MaximumAge); ok {
		return fix, nil
	}

	if opts.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, opts.Timeout)
		defer cancel()
	}

	port, err := g.open()
	if err != nil {
		if errors.Is(err, fs.ErrPermission) {
			return Fix{}, fmt.Errorf("%w: %v", ErrDeniedOrTimedOut, err)
		}
		return Fix{}, fmt.Errorf("%w: %v", ErrCapabilityUnavailable, err)
	}

	var closeOnce sync.Once
	closePort := func() { closeOnce.Do(func() { port.Close() }) }
	defer closePort()

	type readResult struct {
		fix Fix
		err error
	}
	done := make(chan readResult, 1)
	go func() {
		fix, err := readFix(port)
		done <- readResult{fix: fix, err: err}
	}()

	select {
	case <-ctx.Done():
		// Closing the port unblocks the reader goroutine
		closePort()
		return Fix{}, fmt.Errorf("%w: %v", ErrDeniedOrTimedOut, ctx.Err())
	case res := <-done:
		if res.err != nil {
			return Fix{}, res.err
		}
		res.fix.Timestamp = g.now()
		g.remember(res.fix)
		return res.fix, nil
	}
}

func (g *GPSSensor) cached(maxAge time.Duration) (Fix, bool) {
	if maxAge <= 0 {
		return Fix{}, false
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	if !g.hasLast || g.now().Sub(g.last.Timestamp) > maxAge {
		return Fix{}, false
	}
	return g.last, true
}

func (g *GPSSensor) remember(fix Fix) {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.last = fix
	g.hasLast = true
}

// readFix scans NMEA sentences until a GGA or RMC sentence carries a valid fix.
// Unparseable lines are skipped; receivers emit partial sentences on start-up.
func readFix(r io.Reader) (Fix, error) {
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if !strings.HasPrefix(line, "$") {
			continue
		}

		sentence, err := nmea.Parse(line)
		if err != nil {
			continue
		}

		switch s := sentence.(type) {
		case nmea.GGA:
			if s.FixQuality == nmea.Invalid {
				continue
			}
			return Fix{
				Coordinate: geo.Coordinate{Latitude: s.Latitude, Longitude: s.Longitude},
				Accuracy:   s.HDOP, // HDOP as a proxy for accuracy
			}, nil
		case nmea.RMC:
			if s.Validity != nmea.ValidRMC {
				continue
			}
			return Fix{
				Coordinate: geo.Coordinate{Latitude: s.Latitude, Longitude: s.Longitude},
			}, nil
		}
	}

	if err := scanner.Err(); err != nil {
		return Fix{}, fmt.Errorf("%w: reading GPS device: %v", ErrCapabilityUnavailable, err)
	}

	return Fix{}, fmt.Errorf("%w: no valid GPS fix found", ErrCapabilityUnavailable)
}
