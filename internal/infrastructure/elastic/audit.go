package elastic

import (
	"context"
	"crypto/tls"
	"encoding/json"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// Audit actions indexed for the auth trail.
const (
	ActionSignup       = "signup"
	ActionLoginSuccess = "login_success"
	ActionLoginFailure = "login_failure"
	ActionLockout      = "lockout"
)

// NewClient creates an Elasticsearch client with sane defaults and
// optional basic auth.
func NewClient(addrs []string, username, password string) (*elasticsearch.Client, error) {
	cfg := elasticsearch.Config{
		Addresses: addrs,
		Username:  username,
		Password:  password,
		Transport: &http.Transport{
			MaxIdleConnsPerHost:   10,
			ResponseHeaderTimeout: 5 * time.Second,
			TLSClientConfig:       &tls.Config{MinVersion: tls.VersionTLS12},
			DialContext:           (&net.Dialer{Timeout: 5 * time.Second}).DialContext,
		},
	}
	return elasticsearch.NewClient(cfg)
}

// Event is one auth-trail entry. Failed-login events for unknown emails
// are indexed without an account id.
type Event struct {
	AccountID string `json:"account_id,omitempty"`
	Email     string `json:"email,omitempty"`
	Action    string `json:"action"`
	At        string `json:"at"`
}

// AuditIndexer writes auth events to an Elasticsearch index. It is
// fire-and-forget: indexing failures are logged and never surfaced to
// the request path. A nil indexer or nil client disables auditing.
type AuditIndexer struct {
	Client *elasticsearch.Client
	Index  string
	Logger *logrus.Logger
}

func NewAuditIndexer(client *elasticsearch.Client, index string, logger *logrus.Logger) *AuditIndexer {
	return &AuditIndexer{Client: client, Index: index, Logger: logger}
}

// Record indexes one event with a short timeout.
func (a *AuditIndexer) Record(ctx context.Context, accountID, email, action string) {
	if a == nil || a.Client == nil || a.Index == "" {
		return
	}
	ev := Event{
		AccountID: accountID,
		Email:     email,
		Action:    action,
		At:        time.Now().UTC().Format(time.RFC3339Nano),
	}
	b, _ := json.Marshal(ev)
	req := esapi.IndexRequest{
		Index:      a.Index,
		DocumentID: uuid.NewString(),
		Body:       strings.NewReader(string(b)),
		Refresh:    "false",
	}
	c, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	res, err := req.Do(c, a.Client)
	if err != nil {
		if a.Logger != nil {
			a.Logger.WithError(err).WithField("action", action).Warn("audit index failed")
		}
		return
	}
	defer func() { _ = res.Body.Close() }()
	if res.IsError() && a.Logger != nil {
		a.Logger.WithField("status", res.Status()).WithField("action", action).Warn("audit index response error")
	}
}
