package m17gw

import (
	"context"
	"fmt"
	"net"
	"sync"
	"time"

	"github.com/M17-Project/m17-core-go/pkg/config"
	"github.com/M17-Project/m17-core-go/pkg/logger"
	"github.com/M17-Project/m17-core-go/pkg/m17"
)

// ConnectionState mirrors pkg/peer's connection state machine, adapted
// from DMR's RPTL/RPTACK/RPTC sequence to M17's single-packet CONN/ACKN
// handshake.
type ConnectionState int

const (
	StateDisconnected ConnectionState = iota
	StateConnSent
	StateConnected
)

// String returns a human-readable connection state name.
func (s ConnectionState) String() string {
	switch s {
	case StateDisconnected:
		return "disconnected"
	case StateConnSent:
		return "conn_sent"
	case StateConnected:
		return "connected"
	default:
		return "unknown"
	}
}

// Client dials a reflector/peer UDP endpoint, frames outgoing stream
// payloads as M17 IP frames, and decodes inbound ones.
//
// Grounded on pkg/network/client.go's dial/authenticate/keepalive/
// receive-loop shape; the RPTL/RPTK/RPTC three-step handshake there
// becomes a single CONN/ACKN exchange here since M17 reflectors have no
// key-exchange or configuration step.
type Client struct {
	config   config.GatewayConfig
	callsign m17.Address
	log      *logger.Logger
	conn     *net.UDPConn
	addr     *net.UDPAddr

	state   ConnectionState
	stateMu sync.RWMutex

	lastPong   time.Time
	lastPongMu sync.RWMutex

	streamHandler func(lsf m17.LSF, frame m17.StreamFrame)
	handlerMu     sync.RWMutex

	registry *StreamRegistry
}

// NewClient creates a reflector client for the given gateway config,
// identifying itself to the reflector with callsign.
func NewClient(cfg config.GatewayConfig, callsign m17.Address, log *logger.Logger) *Client {
	return &Client{
		config:   cfg,
		callsign: callsign,
		log:      log.WithComponent("m17gw.client"),
		state:    StateDisconnected,
		registry: NewStreamRegistry(),
	}
}

// Start dials the configured reflector, performs the connect handshake,
// and runs the receive/keepalive loops until ctx is canceled.
func (c *Client) Start(ctx context.Context) error {
	if c.config.ReflectorAddr == "" {
		c.log.Info("no reflector configured, gateway client idle")
		<-ctx.Done()
		return ctx.Err()
	}

	addr, err := net.ResolveUDPAddr("udp", fmt.Sprintf("%s:%d", c.config.ReflectorAddr, c.config.ReflectorPort))
	if err != nil {
		return fmt.Errorf("failed to resolve reflector address: %w", err)
	}
	c.addr = addr

	local := &net.UDPAddr{IP: net.ParseIP(c.config.ListenAddr), Port: c.config.ListenPort}
	conn, err := net.ListenUDP("udp", local)
	if err != nil {
		return fmt.Errorf("failed to create UDP connection: %w", err)
	}
	c.conn = conn
	defer conn.Close()

	c.log.Info("client started",
		logger.String("reflector", c.addr.String()),
		logger.String("local", conn.LocalAddr().String()))

	if err := c.connect(); err != nil {
		return fmt.Errorf("connect handshake failed: %w", err)
	}

	errChan := make(chan error, 2)
	go func() { errChan <- c.receiveLoop(ctx) }()
	go func() { errChan <- c.keepaliveLoop(ctx) }()

	select {
	case <-ctx.Done():
		_ = c.disconnect()
		return ctx.Err()
	case err := <-errChan:
		return err
	}
}

// connect sends CONN and waits for ACKN, per the reflector handshake.
func (c *Client) connect() error {
	module := byte('A')
	if len(c.config.Module) == 1 {
		module = c.config.Module[0]
	}

	pkt := make([]byte, 0, ConnPacketSize)
	pkt = append(pkt, []byte(PacketTypeConn)...)
	pkt = append(pkt, module)
	cs := c.callsign.Bytes()
	pkt = append(pkt, cs[:]...)

	if _, err := c.conn.WriteToUDP(pkt, c.addr); err != nil {
		return fmt.Errorf("failed to send CONN: %w", err)
	}
	c.setState(StateConnSent)

	c.conn.SetReadDeadline(time.Now().Add(5 * time.Second))
	buf := make([]byte, 64)
	n, _, err := c.conn.ReadFromUDP(buf)
	if err != nil {
		return fmt.Errorf("failed to receive ACKN: %w", err)
	}
	c.conn.SetReadDeadline(time.Time{})

	if n >= 4 && string(buf[0:4]) == PacketTypeAckn {
		c.log.Info("received ACKN")
		c.setState(StateConnected)
		return nil
	}
	if n >= 4 && string(buf[0:4]) == PacketTypeNack {
		return fmt.Errorf("reflector refused connection (NACK)")
	}
	return fmt.Errorf("unexpected response to CONN")
}

// disconnect sends DISC to the reflector.
func (c *Client) disconnect() error {
	if c.getState() != StateConnected {
		return nil
	}
	cs := c.callsign.Bytes()
	pkt := append([]byte(PacketTypeDisc), cs[:]...)
	_, err := c.conn.WriteToUDP(pkt, c.addr)
	c.setState(StateDisconnected)
	return err
}

// receiveLoop reads inbound datagrams and dispatches them by type.
func (c *Client) receiveLoop(ctx context.Context) error {
	buf := make([]byte, 4096)
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		c.conn.SetReadDeadline(time.Now().Add(100 * time.Millisecond))
		n, _, err := c.conn.ReadFromUDP(buf)
		if err != nil {
			if netErr, ok := err.(net.Error); ok && netErr.Timeout() {
				continue
			}
			return fmt.Errorf("read error: %w", err)
		}
		c.handlePacket(buf[:n])
	}
}

// handlePacket dispatches one inbound datagram by its leading magic.
func (c *Client) handlePacket(data []byte) {
	switch {
	case len(data) == m17.IPFrameSize:
		frame, err := m17.IPFrameFromBytes(data)
		if err != nil {
			c.log.Debug("dropped malformed ip frame", logger.Error(err))
			return
		}
		c.handleIPFrame(frame)

	case len(data) >= 4 && string(data[0:4]) == PacketTypePong:
		c.updateLastPong()

	case len(data) >= 4 && string(data[0:4]) == PacketTypeDisc:
		c.log.Warn("reflector sent DISC")
		c.setState(StateDisconnected)

	default:
		c.log.Debug("received unrecognized datagram", logger.Int("size", len(data)))
	}
}

// handleIPFrame decodes an inbound M17-over-IP frame and invokes the
// registered stream handler.
func (c *Client) handleIPFrame(frame m17.IPFrame) {
	lsf, err := m17.LSFFromNoCRCBytes(frame.LSFNoCRC[:])
	if err != nil {
		c.log.Debug("dropped ip frame with bad lsf", logger.Error(err))
		return
	}
	sf, err := m17.StreamFrameFromBytes(frame.StreamFrame[:])
	if err != nil {
		c.log.Debug("dropped ip frame with bad stream body", logger.Error(err))
		return
	}

	c.handlerMu.RLock()
	handler := c.streamHandler
	c.handlerMu.RUnlock()
	if handler != nil {
		handler(lsf, sf)
	}

	if sf.EOT() {
		c.registry.Discard(frame.StreamID)
	}
}

// SendStream frames lsf/sf as an M17-over-IP datagram and sends it to
// the connected reflector.
func (c *Client) SendStream(streamID uint16, lsf m17.LSF, sf m17.StreamFrame) error {
	if c.getState() != StateConnected {
		return fmt.Errorf("not connected to reflector")
	}
	frame := m17.IPFrame{
		StreamID:    streamID,
		LSFNoCRC:    lsf.NoCRCBytes(),
		StreamFrame: sf.Bytes(),
	}
	out := frame.Bytes()
	if _, err := c.conn.WriteToUDP(out[:], c.addr); err != nil {
		return fmt.Errorf("failed to send ip frame: %w", err)
	}
	if sf.EOT() {
		c.registry.Discard(streamID)
	}
	return nil
}

// IngestRFStreamFrame folds one RF-side stream frame's LICH unit into
// the running collector for streamID, returning the reassembled LSF
// once all 6 LICH slots have been filled. Complements the IP path,
// which carries a complete LSF with every datagram: this is the path a
// locally attached modem feeding raw RF frames would use, where the
// governing LSF must be rebuilt incrementally per spec.md §4.9.
func (c *Client) IngestRFStreamFrame(streamID uint16, lichUnit [6]byte) (m17.LSF, bool, error) {
	slotIndex, chunk := m17.SplitLICHUnit(lichUnit)
	collector := c.registry.Collector(streamID)
	collector.Accept(slotIndex, chunk, 0)
	if !collector.Complete() {
		return m17.LSF{}, false, nil
	}
	lsf, err := collector.TryAssemble()
	if err != nil {
		return m17.LSF{}, false, err
	}
	return lsf, true, nil
}

// DiscardStream drops any in-progress LICH collector for streamID,
// called when a stream terminates or a new stream ID is seen.
func (c *Client) DiscardStream(streamID uint16) {
	c.registry.Discard(streamID)
}

// OnStream sets the handler invoked for each decoded inbound stream frame.
func (c *Client) OnStream(handler func(lsf m17.LSF, frame m17.StreamFrame)) {
	c.handlerMu.Lock()
	c.streamHandler = handler
	c.handlerMu.Unlock()
}

// keepaliveLoop sends periodic PING datagrams while connected.
func (c *Client) keepaliveLoop(ctx context.Context) error {
	interval := time.Duration(c.config.PingInterval) * time.Second
	if interval <= 0 {
		interval = 5 * time.Second
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	missed := 0
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			if c.getState() != StateConnected {
				continue
			}
			last := c.getLastPong()
			if !last.IsZero() && time.Since(last) > interval*time.Duration(c.config.MaxMissed) {
				missed++
				c.log.Warn("missed keepalive pongs", logger.Int("missed", missed))
				if c.config.MaxMissed > 0 && missed >= c.config.MaxMissed {
					c.setState(StateDisconnected)
					return fmt.Errorf("reflector unresponsive after %d missed pings", missed)
				}
			}

			cs := c.callsign.Bytes()
			pkt := append([]byte(PacketTypePing), cs[:]...)
			if _, err := c.conn.WriteToUDP(pkt, c.addr); err != nil {
				c.log.Error("failed to send ping", logger.Error(err))
			}
		}
	}
}

func (c *Client) setState(state ConnectionState) {
	c.stateMu.Lock()
	c.state = state
	c.stateMu.Unlock()
}

// GetState returns the client's current connection state.
func (c *Client) GetState() ConnectionState {
	return c.getState()
}

func (c *Client) getState() ConnectionState {
	c.stateMu.RLock()
	defer c.stateMu.RUnlock()
	return c.state
}

func (c *Client) updateLastPong() {
	c.lastPongMu.Lock()
	c.lastPong = time.Now()
	c.lastPongMu.Unlock()
}

func (c *Client) getLastPong() time.Time {
	c.lastPongMu.RLock()
	defer c.lastPongMu.RUnlock()
	return c.lastPong
}
