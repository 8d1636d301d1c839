package exiftool

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os/exec"
	"regexp"
	"strconv"
	"strings"
	"sync"
	"time"

	"faramir/internal/exposure"
	"faramir/internal/logging"
	"faramir/internal/services"
)

const (
	readyMarker    = "{ready}"
	defaultTimeout = 30 * time.Second
	stderrTailSize = 8
)

var resultPattern = regexp.MustCompile(`(\d+) image files? (updated|unchanged)`)

// Option configures the client.
type Option func(*Client)

// WithLogger routes process diagnostics to logger.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithOverwriteOriginal controls whether exiftool keeps "_original" backups.
func WithOverwriteOriginal(enabled bool) Option {
	return func(c *Client) {
		c.overwriteOriginal = enabled
	}
}

// WithTimeout bounds each write. Non-positive values keep the default.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.timeout = d
		}
	}
}

// Client writes tag sets through a persistent exiftool process.
// It is safe for concurrent use; writes are serialized.
type Client struct {
	binary            string
	overwriteOriginal bool
	timeout           time.Duration
	logger            *slog.Logger

	mu   sync.Mutex
	proc *process
}

// New constructs a client for binary. The process is not started until the
// first write.
func New(binary string, opts ...Option) (*Client, error) {
	binary = strings.TrimSpace(binary)
	if binary == "" {
		return nil, errors.New("exiftool binary required")
	}
	c := &Client{
		binary:            binary,
		overwriteOriginal: true,
		timeout:           defaultTimeout,
		logger:            logging.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	c.logger = logging.NewComponentLogger(c.logger, "exiftool")
	return c, nil
}

// WriteTags writes tags into the file at path in place. An empty tag set is
// a no-op.
func (c *Client) WriteTags(ctx context.Context, path string, tags exposure.TagSet) error {
	if tags.Empty() {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.proc == nil {
		proc, err := startProcess(c.binary, c.logger)
		if err != nil {
			return services.Wrap(services.ErrExternalTool, "exiftool", "start", "unable to launch exiftool", err)
		}
		c.proc = proc
	}

	args := BuildArgs(path, tags, c.overwriteOriginal)
	c.logger.Debug("writing tags", logging.String("file", path), logging.Int("tag_count", tags.Len()))

	output, err := c.proc.execute(ctx, args, c.timeout)
	if err != nil {
		c.proc.kill()
		c.proc = nil
		if errors.Is(err, errTimedOut) {
			return services.Wrap(services.ErrTimeout, "exiftool", "write tags", fmt.Sprintf("no response within %s", c.timeout), err)
		}
		return services.Wrap(services.ErrExternalTool, "exiftool", "write tags", "", err)
	}

	if n, ok := parseResult(output.stdout); !ok || n < 1 {
		detail := strings.TrimSpace(strings.Join(output.stderr, "; "))
		if detail == "" {
			detail = strings.TrimSpace(output.stdout)
		}
		return services.Wrap(services.ErrExternalTool, "exiftool", "write tags", "file not updated", errors.New(detail))
	}
	return nil
}

// Close stops the exiftool process if one is running.
func (c *Client) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.proc == nil {
		return nil
	}
	err := c.proc.close()
	c.proc = nil
	return err
}

// Version runs "exiftool -ver" and returns the reported version.
func (c *Client) Version(ctx context.Context) (string, error) {
	out, err := exec.CommandContext(ctx, c.binary, "-ver").Output() //nolint:gosec
	if err != nil {
		return "", services.Wrap(services.ErrExternalTool, "exiftool", "version", "", err)
	}
	return strings.TrimSpace(string(out)), nil
}

func parseResult(stdout string) (int, bool) {
	total := 0
	matched := false
	for _, m := range resultPattern.FindAllStringSubmatch(stdout, -1) {
		n, err := strconv.Atoi(m[1])
		if err != nil {
			continue
		}
		matched = true
		total += n
	}
	return total, matched
}

var errTimedOut = errors.New("exiftool did not respond")

type process struct {
	cmd    *exec.Cmd
	stdin  io.WriteCloser
	lines  chan string
	logger *slog.Logger

	stderrMu   sync.Mutex
	stderrTail []string
}

type result struct {
	stdout string
	stderr []string
}

func startProcess(binary string, logger *slog.Logger) (*process, error) {
	cmd := exec.Command(binary, "-stay_open", "True", "-@", "-") //nolint:gosec
	stdin, err := cmd.StdinPipe()
	if err != nil {
		return nil, fmt.Errorf("stdin pipe: %w", err)
	}
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return nil, fmt.Errorf("stdout pipe: %w", err)
	}
	stderr, err := cmd.StderrPipe()
	if err != nil {
		return nil, fmt.Errorf("stderr pipe: %w", err)
	}
	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("start command: %w", err)
	}

	p := &process{
		cmd:    cmd,
		stdin:  stdin,
		lines:  make(chan string, 64),
		logger: logger,
	}
	go p.readStdout(stdout)
	go p.readStderr(stderr)
	logger.Debug("exiftool started", logging.Int("pid", cmd.Process.Pid))
	return p, nil
}

func (p *process) readStdout(r io.Reader) {
	defer close(p.lines)
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		p.lines <- scanner.Text()
	}
}

func (p *process) readStderr(r io.Reader) {
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		p.logger.Debug("exiftool stderr", logging.String("line", line))
		p.stderrMu.Lock()
		p.stderrTail = append(p.stderrTail, line)
		if len(p.stderrTail) > stderrTailSize {
			p.stderrTail = p.stderrTail[len(p.stderrTail)-stderrTailSize:]
		}
		p.stderrMu.Unlock()
	}
}

func (p *process) takeStderr() []string {
	p.stderrMu.Lock()
	defer p.stderrMu.Unlock()
	out := p.stderrTail
	p.stderrTail = nil
	return out
}

func (p *process) execute(ctx context.Context, args []string, timeout time.Duration) (result, error) {
	p.takeStderr()

	var payload strings.Builder
	for _, arg := range args {
		payload.WriteString(arg)
		payload.WriteByte('\n')
	}
	payload.WriteString("-execute\n")
	if _, err := io.WriteString(p.stdin, payload.String()); err != nil {
		return result{}, fmt.Errorf("write arguments: %w", err)
	}

	timer := time.NewTimer(timeout)
	defer timer.Stop()

	var out strings.Builder
	for {
		select {
		case line, ok := <-p.lines:
			if !ok {
				return result{}, errors.New("exiftool exited unexpectedly")
			}
			if strings.HasPrefix(line, readyMarker) {
				// stderr travels on its own pipe; let it drain.
				time.Sleep(5 * time.Millisecond)
				return result{stdout: out.String(), stderr: p.takeStderr()}, nil
			}
			out.WriteString(line)
			out.WriteByte('\n')
		case <-timer.C:
			return result{}, errTimedOut
		case <-ctx.Done():
			return result{}, ctx.Err()
		}
	}
}

func (p *process) close() error {
	if _, err := io.WriteString(p.stdin, "-stay_open\nFalse\n"); err != nil {
		p.kill()
		return fmt.Errorf("stop exiftool: %w", err)
	}
	if err := p.stdin.Close(); err != nil {
		p.kill()
		return fmt.Errorf("close stdin: %w", err)
	}

	done := make(chan error, 1)
	go func() { done <- p.cmd.Wait() }()
	select {
	case err := <-done:
		return err
	case <-time.After(5 * time.Second):
		p.kill()
		return errors.New("exiftool did not exit")
	}
}

func (p *process) kill() {
	if p.cmd.Process != nil {
		_ = p.cmd.Process.Kill()
	}
	go func() {
		for range p.lines {
		}
	}()
	go func() { _ = p.cmd.Wait() }()
}
