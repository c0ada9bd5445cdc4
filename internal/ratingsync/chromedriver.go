package ratingsync

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"os/exec"
	"strconv"
	"time"
)

// driver wraps a locally launched chromedriver process.
type driver struct {
	cmd *exec.Cmd
	url string
}

// startDriver launches the chromedriver binary on a free port and waits for
// it to report ready.
func startDriver(ctx context.Context, binary string) (*driver, error) {
	port, err := freePort()
	if err != nil {
		return nil, fmt.Errorf("allocate driver port: %w", err)
	}

	cmd := exec.CommandContext(ctx, binary, "--port="+strconv.Itoa(port))
	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("start chromedriver: %w", err)
	}

	d := &driver{
		cmd: cmd,
		url: fmt.Sprintf("http://127.0.0.1:%d", port),
	}
	if err := d.waitReady(ctx, 10*time.Second); err != nil {
		d.stop()
		return nil, err
	}
	return d, nil
}

func (d *driver) waitReady(ctx context.Context, timeout time.Duration) error {
	client := &http.Client{Timeout: time.Second}
	deadline := time.Now().Add(timeout)
	for {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, d.url+"/status", nil)
		if err != nil {
			return err
		}
		resp, err := client.Do(req)
		if err == nil {
			resp.Body.Close()
			if resp.StatusCode == http.StatusOK {
				return nil
			}
		}
		if time.Now().After(deadline) {
			return fmt.Errorf("chromedriver not ready after %s", timeout)
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(200 * time.Millisecond):
		}
	}
}

func (d *driver) stop() {
	if d.cmd != nil && d.cmd.Process != nil {
		_ = d.cmd.Process.Kill()
		_ = d.cmd.Wait()
	}
}

func freePort() (int, error) {
	listener, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		return 0, err
	}
	defer listener.Close()
	return listener.Addr().(*net.TCPAddr).Port, nil
}
