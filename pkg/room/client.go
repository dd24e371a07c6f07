package room

import (
	"fmt"

	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"
)

// Client is a client connected to the server via websockets
type Client struct {
	// Conn is the underlying websocket connection
	Conn *websocket.Conn

	// send is a channel for sending messages to the client
	send chan interface{}

	// Close is a channel for closing the client
	Close chan string

	// CloseError contains the reason why the connection was closed
	CloseError error

	dealer *Dealer

	tableID string
	// participant is empty for a spectator
	participant string
}

// NewClient returns a new client object
func NewClient(conn *websocket.Conn, tableID, participant string) *Client {
	return &Client{
		send:        make(chan interface{}, 256),
		Close:       make(chan string),
		Conn:        conn,
		tableID:     tableID,
		participant: participant,
	}
}

// Send send a message to the web client
func (c *Client) Send(msg interface{}) bool {
	select {
	case c.send <- msg:
		return true
	default:
		return false
	}
}

// SendChan returns a read-only channel
func (c *Client) SendChan() <-chan interface{} {
	return c.send
}

// Participant returns the participant the client is seated as
func (c *Client) Participant() string {
	return c.participant
}

// String returns a traceable identifier for the participant and table
func (c *Client) String() string {
	participant := c.participant
	if participant == "" {
		participant = "spectator"
	}

	return fmt.Sprintf("%s:%s", participant, c.tableID)
}

// ReceivedMessage is called when the server receives a message from a connected client
func (c *Client) ReceivedMessage(msg *PayloadIn) {
	if c.dealer == nil {
		logrus.WithField("msg", msg).Warn("received message, but dealer not found")
		return
	}

	c.dealer.ReceivedMessage(c, msg)
}
