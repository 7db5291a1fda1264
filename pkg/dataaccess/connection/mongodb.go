package connection

import (
	"context"
	"fmt"
	"time"

	"github.com/lirobabyxoxo/Sayaburradocarlaho/pkg/dataaccess/monitoring"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

const connectTimeout = 10 * time.Second

type MongoDB struct {
	ConnectionString string
	Username         string
	Password         string
	Host             string
	Port             string
	Args             string
}

func (m *MongoDB) GenerateConnectionString() {
	cs := "mongodb+srv://"
	if m.Username != "" && m.Password != "" {
		cs += m.Username + ":" + m.Password + "@"
	} else if m.Username != "" {
		cs += m.Username + "@"
	}

	cs += m.Host

	if m.Port != "" {
		cs += ":" + m.Port
	}

	if m.Args != "" {
		cs += "/?" + m.Args
	}

	m.ConnectionString = cs
}

// Connect creates a client and verifies it can reach the primary.
func (m *MongoDB) Connect(ctx context.Context) (*mongo.Client, error) {
	if m.ConnectionString == "" {
		m.GenerateConnectionString()
	}

	serverAPI := options.ServerAPI(options.ServerAPIVersion1)
	opts := options.Client().ApplyURI(m.ConnectionString).SetServerAPIOptions(serverAPI)

	ctx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()

	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("error connecting to mongo: %w", err)
	}

	if err := Ping(ctx, client); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, err
	}
	return client, nil
}

// Ping pings the primary of client.
func Ping(ctx context.Context, client *mongo.Client) error {
	defer monitoring.Observe("connection", "ping")()

	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		monitoring.StoreErrors.WithLabelValues("connection", "ping").Inc()
		return fmt.Errorf("error pinging mongo: %w", err)
	}
	return nil
}
