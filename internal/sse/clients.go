// Package sse provides Server-Sent Events client management for real-time communication.
package sse

import (
	"sync"
)

// Topics clients can subscribe to.
const (
	TopicSlideshow = "slideshow"
	TopicImages    = "images"
	TopicProjects  = "projects"
	TopicPosts     = "posts"
)

type Client struct {
	Msg   chan string
	Topic string
}

func NewClient(topic string) *Client {
	return &Client{Msg: make(chan string, 8), Topic: topic}
}

type SSEClients struct {
	clients map[*Client]bool
	mu      sync.RWMutex
}

func NewSSEClients() *SSEClients {
	return &SSEClients{
		clients: make(map[*Client]bool),
	}
}

func (s *SSEClients) Add(client *Client) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.clients[client] = true
}

func (s *SSEClients) Delete(client *Client) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.clients[client]; !ok {
		return
	}
	delete(s.clients, client)
	close(client.Msg)
}

// CloseAll disconnects every client, ending their event streams.
func (s *SSEClients) CloseAll() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for client := range s.clients {
		close(client.Msg)
	}
	s.clients = make(map[*Client]bool)
}

func (s *SSEClients) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.clients)
}

// Broadcast sends msg to every client subscribed to topic. Slow clients
// miss the message instead of blocking the sender.
func (s *SSEClients) Broadcast(topic, msg string) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for client := range s.clients {
		if client.Topic == topic {
			select {
			case client.Msg <- msg:
			default:
			}
		}
	}
}
