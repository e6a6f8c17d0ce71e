package platform

import (
	"bufio"
	"errors"
	"fmt"
	"hash/fnv"
	"net"
	"strings"
	"sync"
	"time"

	"rotaclock/internal/logger"
)

// ErrAlreadyRunning indicates another instance already holds the lock.
var ErrAlreadyRunning = errors.New("instance already running")

const showRequest = "show"

// InstanceGuard holds the single-instance lock and answers "show" requests
// sent by later launches.
type InstanceGuard struct {
	listener net.Listener
	address  string
	log      *logger.Logger
	once     sync.Once
}

// AcquireSingleInstance binds a deterministic localhost port derived from appName.
// When the port is taken, the running instance is asked to show itself and
// ErrAlreadyRunning is returned.
func AcquireSingleInstance(appName string, log *logger.Logger) (*InstanceGuard, error) {
	address := fmt.Sprintf("127.0.0.1:%d", portFromName(appName))
	listener, err := net.Listen("tcp", address)
	if err != nil {
		if notifyErr := requestShow(address); notifyErr != nil {
			log.Warn(notifyErr, "could not reach running instance")
		}
		return nil, ErrAlreadyRunning
	}
	return &InstanceGuard{listener: listener, address: address, log: log}, nil
}

// Serve calls onShow for every show request until the guard is released.
func (guard *InstanceGuard) Serve(onShow func()) {
	if guard == nil || guard.listener == nil {
		return
	}
	go func() {
		for {
			conn, err := guard.listener.Accept()
			if err != nil {
				return
			}
			guard.handle(conn, onShow)
		}
	}()
}

// Release frees the single instance lock.
func (guard *InstanceGuard) Release() error {
	if guard == nil || guard.listener == nil {
		return nil
	}
	var err error
	guard.once.Do(func() { err = guard.listener.Close() })
	return err
}

// Address returns the bound address.
func (guard *InstanceGuard) Address() string {
	if guard == nil {
		return ""
	}
	return guard.address
}

func (guard *InstanceGuard) handle(conn net.Conn, onShow func()) {
	defer conn.Close()
	_ = conn.SetReadDeadline(time.Now().Add(time.Second))
	line, err := bufio.NewReader(conn).ReadString('\n')
	if err != nil {
		guard.log.Debug("dropped instance request")
		return
	}
	if strings.TrimSpace(line) == showRequest && onShow != nil {
		onShow()
	}
}

func requestShow(address string) error {
	conn, err := net.DialTimeout("tcp", address, time.Second)
	if err != nil {
		return fmt.Errorf("dial running instance: %w", err)
	}
	defer conn.Close()
	if _, err := conn.Write([]byte(showRequest + "\n")); err != nil {
		return fmt.Errorf("send show request: %w", err)
	}
	return nil
}

func portFromName(appName string) int {
	const (
		minPort = 20000
		maxPort = 39999
	)
	hash := fnv.New32a()
	_, _ = hash.Write([]byte(appName))
	rangeSize := maxPort - minPort + 1
	return minPort + int(hash.Sum32()%uint32(rangeSize))
}
