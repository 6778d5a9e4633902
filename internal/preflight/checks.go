package preflight

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"

	"golang.org/x/sys/unix"
)

const portDialTimeout = 2 * time.Second

// CheckDirectoryAccess verifies that the directory exists and is readable/writable.
func CheckDirectoryAccess(name, path string) Result {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Result{Name: name, Detail: fmt.Sprintf("%s (error: does not exist)", path)}
		}
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: stat: %v)", path, err)}
	}
	if !info.IsDir() {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: is not a directory)", path)}
	}
	if err := unix.Access(path, unix.R_OK|unix.W_OK|unix.X_OK); err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: insufficient permissions: %v)", path, err)}
	}
	return Result{Name: name, Passed: true, Detail: fmt.Sprintf("%s (read/write ok)", path)}
}

// CheckPort reports whether anything accepts TCP connections on host:port.
func CheckPort(host string, port int) Result {
	name := fmt.Sprintf("Port %d", port)
	address := net.JoinHostPort(host, strconv.Itoa(port))
	conn, err := net.DialTimeout("tcp", address, portDialTimeout)
	if err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("%s (closed: %v)", address, err)}
	}
	_ = conn.Close()
	return Result{Name: name, Passed: true, Detail: fmt.Sprintf("%s (open)", address)}
}

// CheckGatewayPorts probes the candidate bridge ports in order and passes as
// soon as one accepts a connection. Duplicate ports are probed once.
func CheckGatewayPorts(host string, ports []int) Result {
	const name = "Gateway bridge"

	seen := make(map[int]bool, len(ports))
	var closed []string
	for _, port := range ports {
		if port <= 0 || seen[port] {
			continue
		}
		seen[port] = true
		if probe := CheckPort(host, port); probe.Passed {
			return Result{Name: name, Passed: true, Detail: fmt.Sprintf("listening on %s", net.JoinHostPort(host, strconv.Itoa(port)))}
		}
		closed = append(closed, strconv.Itoa(port))
	}
	if len(closed) == 0 {
		return Result{Name: name, Detail: "no candidate ports configured"}
	}
	return Result{Name: name, Detail: fmt.Sprintf("no bridge on ports %s", strings.Join(closed, ", "))}
}

// CheckQuoteSearch verifies the quote-search endpoint answers HTTP at all.
// Any response counts; this is a reachability check, not an API check.
func CheckQuoteSearch(ctx context.Context, baseURL string) Result {
	const name = "Quote search"

	base := strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if base == "" {
		return Result{Name: name, Detail: "missing url"}
	}

	checkCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	client := &http.Client{Timeout: 5 * time.Second}
	req, err := http.NewRequestWithContext(checkCtx, http.MethodGet, base, nil)
	if err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("reachability check failed (%v)", err)}
	}

	resp, err := client.Do(req)
	if err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("unreachable (%v)", err)}
	}
	defer resp.Body.Close()

	return Result{Name: name, Passed: true, Detail: fmt.Sprintf("reachable (%d)", resp.StatusCode)}
}
