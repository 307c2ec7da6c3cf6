package client

import (
	"context"
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"fmt"

	"github.com/Tnze/go-mc/offline"
	"github.com/dynamitemc/froglight/conn"
	"github.com/dynamitemc/froglight/protocol/codec"
	"github.com/dynamitemc/froglight/protocol/packet"
	"github.com/dynamitemc/froglight/protocol/v769"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
)

// login runs the handshake and login states. It returns once the login is
// acknowledged and both halves are in configuration.
func (c *Client) login(ctx context.Context, cn *conn.Conn) (err error) {
	ctx, span := c.tracer.Start(ctx, "client.login")
	defer func() { endSpan(span, err) }()
	defer context.AfterFunc(ctx, func() { cn.Close() })()
	cn.SetDeadline(c.deadline(ctx))

	name, id, err := c.profile(ctx)
	if err != nil {
		return err
	}
	if err := cn.Send(intention(cn.Addr, packet.IntentLogin)); err != nil {
		return err
	}
	if err := cn.Send(&v769.ServerboundHello{Name: v769.Username(name), UUID: codec.UUID(id)}); err != nil {
		return err
	}

	for {
		p, err := cn.Recv()
		if err != nil {
			return err
		}
		switch p := p.(type) {
		case *v769.ClientboundHello:
			err = c.encrypt(ctx, cn, p, id)
		case *v769.ClientboundLoginCompression:
			cn.SetCompression(int32(p.Threshold))
			c.log.Debug("[Client] Compression threshold set to %d", p.Threshold)
		case *v769.ClientboundCustomQuery:
			c.log.Debug("[Client] Ignoring login query %d on %s", p.MessageID, p.Channel)
			err = cn.Send(&v769.ServerboundCustomQueryAnswer{MessageID: p.MessageID})
		case *v769.ClientboundLoginCookieRequest:
			err = cn.Send(&v769.ServerboundLoginCookieResponse{Key: p.Key, Payload: c.cookie(p.Key)})
		case *v769.ClientboundLoginDisconnect:
			return &DisconnectError{State: packet.Login, Reason: p.Reason.Value.ClearString()}
		case *v769.ClientboundLoginFinished:
			cn.SetProfile(string(p.Name), uuid.UUID(p.UUID))
			span.SetAttributes(attribute.String("player.name", string(p.Name)), attribute.String("player.id", p.UUID.String()))
			c.log.Info("[Client] Logged in as %s (%s)", p.Name, p.UUID)
			return cn.Send(&v769.ServerboundLoginAcknowledged{})
		default:
			return fmt.Errorf("%w: %T during login", ErrUnexpectedPacket, p)
		}
		if err != nil {
			return err
		}
	}
}

// profile is the name and id sent in the hello packet. Offline accounts
// use the id the server derives from the name.
func (c *Client) profile(ctx context.Context) (string, uuid.UUID, error) {
	account := c.Config.Account
	if !account.Online {
		return account.Username, offline.NameToUUID(account.Username), nil
	}
	if c.joiner == nil {
		return "", uuid.Nil, ErrAuthRequired
	}
	return c.joiner.Profile(ctx)
}

// encrypt answers an encryption request: it picks a shared secret, joins
// the session when the server authenticates, and switches the connection
// to AES/CFB8 once the key packet is out.
func (c *Client) encrypt(ctx context.Context, cn *conn.Conn, p *v769.ClientboundHello, id uuid.UUID) error {
	key, err := x509.ParsePKIXPublicKey(p.PublicKey)
	if err != nil {
		return fmt.Errorf("client: server public key: %w", err)
	}
	pub, ok := key.(*rsa.PublicKey)
	if !ok {
		return fmt.Errorf("client: server public key is %T, not RSA", key)
	}
	secret := make([]byte, 16)
	if _, err := rand.Read(secret); err != nil {
		return err
	}

	if p.ShouldAuthenticate {
		if c.joiner == nil {
			return ErrAuthRequired
		}
		if err := c.joiner.Join(ctx, id, ServerHash(string(p.ServerID), secret, p.PublicKey)); err != nil {
			return err
		}
	}

	sharedSecret, err := rsa.EncryptPKCS1v15(rand.Reader, pub, secret)
	if err != nil {
		return err
	}
	verifyToken, err := rsa.EncryptPKCS1v15(rand.Reader, pub, p.VerifyToken)
	if err != nil {
		return err
	}
	if err := cn.Send(&v769.ServerboundKey{SharedSecret: sharedSecret, VerifyToken: verifyToken}); err != nil {
		return err
	}
	return cn.EnableEncryption(secret)
}

func (c *Client) cookie(key codec.Identifier) codec.Option[codec.ByteArray] {
	c.mu.Lock()
	defer c.mu.Unlock()
	data, ok := c.cookies[key.Normalize()]
	return codec.Option[codec.ByteArray]{Has: ok, Value: data}
}

func (c *Client) storeCookie(key codec.Identifier, data []byte) {
	c.mu.Lock()
	c.cookies[key.Normalize()] = append([]byte(nil), data...)
	c.mu.Unlock()
}
