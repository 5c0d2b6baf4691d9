package whatsapp

import (
	"context"
	"errors"
	"fmt"

	_ "github.com/mattn/go-sqlite3"
	"go.mau.fi/whatsmeow"
	"go.mau.fi/whatsmeow/proto/waE2E"
	"go.mau.fi/whatsmeow/store/sqlstore"
	"go.mau.fi/whatsmeow/types"
	"go.uber.org/zap"
	"google.golang.org/protobuf/proto"

	"github.com/omriShneor/project_concierge/internal/inbox"
)

// ErrNotConnected is returned by SendText before pairing completes.
var ErrNotConnected = errors.New("whatsapp not connected")

type Client struct {
	WAClient *whatsmeow.Client
	handler  *Handler
	state    *State
	logger   *zap.Logger
}

func NewClient(handler *Handler, state *State, dbPath string, logger *zap.Logger) (*Client, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	ctx := context.Background()

	container, err := sqlstore.New(ctx, "sqlite3", "file:"+dbPath+"?_foreign_keys=on", newWALogger(logger, "whatsmeow.db"))
	if err != nil {
		return nil, fmt.Errorf("failed to create database: %w", err)
	}

	deviceStore, err := container.GetFirstDevice(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get device store: %w", err)
	}

	waClient := whatsmeow.NewClient(deviceStore, newWALogger(logger, "whatsmeow"))
	if handler != nil {
		waClient.AddEventHandler(handler.HandleEvent)
	}

	return &Client{
		WAClient: waClient,
		handler:  handler,
		state:    state,
		logger:   logger.Named("whatsapp"),
	}, nil
}

func (c *Client) IsLoggedIn() bool {
	return c.WAClient.Store.ID != nil
}

// Connect resumes a paired session, or starts QR pairing and blocks until
// the code is scanned, expires, or ctx is done.
func (c *Client) Connect(ctx context.Context) error {
	if c.IsLoggedIn() {
		if err := c.WAClient.Connect(); err != nil {
			return fmt.Errorf("failed to connect: %w", err)
		}
		return nil
	}

	qrChan, err := c.WAClient.GetQRChannel(ctx)
	if err != nil {
		return fmt.Errorf("failed to get QR channel: %w", err)
	}

	// Connect triggers QR generation
	if err := c.WAClient.Connect(); err != nil {
		return fmt.Errorf("failed to connect: %w", err)
	}

	for evt := range qrChan {
		switch evt.Event {
		case "code":
			c.showQR(evt.Code)
		case "success":
			c.setStatus(StatusConnected)
			c.logger.Info("whatsapp paired successfully")
			return nil
		case "timeout":
			c.setError("QR code expired. Restart pairing to try again.")
			return errors.New("QR pairing timed out")
		}
	}
	return ctx.Err()
}

func (c *Client) showQR(code string) {
	if err := WriteQRFile(code, qrPNGPath); err != nil {
		c.logger.Warn("failed to write QR file", zap.Error(err))
	} else {
		c.logger.Info("scan the QR code to pair", zap.String("path", qrPNGPath))
	}

	dataURL, err := GenerateQRDataURL(code)
	if err != nil {
		c.setError(fmt.Sprintf("Failed to generate QR: %v", err))
		return
	}
	if c.state != nil {
		c.state.SetQR(dataURL)
	}
}

// SendText delivers a plain text message to a phone number.
func (c *Client) SendText(ctx context.Context, to, text string) error {
	if !c.WAClient.IsConnected() || !c.IsLoggedIn() {
		return ErrNotConnected
	}

	number := inbox.NormalizeNumber(to)
	if number == "" {
		return fmt.Errorf("invalid recipient %q", to)
	}
	jid := types.NewJID(number, types.DefaultUserServer)

	if err := c.WAClient.SendChatPresence(ctx, jid, types.ChatPresenceComposing, types.ChatPresenceMediaText); err != nil {
		c.logger.Debug("failed to send typing indicator", zap.Error(err))
	}

	if _, err := c.WAClient.SendMessage(ctx, jid, &waE2E.Message{Conversation: proto.String(text)}); err != nil {
		return fmt.Errorf("failed to send message: %w", err)
	}
	return nil
}

func (c *Client) Disconnect() {
	c.WAClient.Disconnect()
	c.setStatus(StatusDisconnected)
}

func (c *Client) setStatus(status string) {
	if c.state != nil {
		c.state.SetStatus(status)
	}
}

func (c *Client) setError(msg string) {
	if c.state != nil {
		c.state.SetError(msg)
	}
}

var _ inbox.Sender = (*Client)(nil)
