// PROPRIETARY AND CONFIDENTIAL
//
// Unauthorized copying of this file via any medium is strictly prohibited.
//
// Copyright (c) 2025-2026 Evlytic Ltd. All rights reserved.

package clickhouse

import (
	"bytes"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"

	"github.com/evlytic/clickbridge/pkg/common"
)

// Result contains the rows returned from a read query.  Row-oriented
// responses are parsed into one map per row; any other response format is
// returned as a single raw-payload row.
type Result struct {
	Rows []map[string]interface{}
}

// Client issues HTTP requests against the analytical store's query endpoint
type Client struct {
	client   *http.Client
	queryURL string
	database string
	username string
	password string
	log      *log.Entry
}

// NewClient creates a client for the analytical store's HTTP interface
func NewClient(host string, port int, database string, username string, password string, secure bool, skipVerifyTLS bool, requestTimeout int) (*Client, error) {
	if host == "" {
		return nil, errors.New("Invalid host for analytical store: ''")
	}
	if database == "" {
		return nil, errors.New("Invalid database for analytical store: ''")
	}

	scheme := "http"
	if secure {
		scheme = "https"
	}
	queryURL := fmt.Sprintf("%s://%s:%d/", scheme, host, port)
	if _, err := url.Parse(queryURL); err != nil {
		return nil, err
	}

	tlsConfig, err := common.CreateTLSConfiguration("", "", "", skipVerifyTLS)
	if err != nil {
		return nil, err
	}
	transport := &http.Transport{TLSClientConfig: tlsConfig}

	return &Client{
		client: &http.Client{
			Transport: transport,
			Timeout:   time.Duration(requestTimeout) * time.Second,
		},
		queryURL: queryURL,
		database: database,
		username: username,
		password: password,
		log:      log.WithFields(log.Fields{"client": "clickhouse", "url": queryURL, "database": database}),
	}, nil
}

// do issues a POST of the statement body with the given query-string values
func (c *Client) do(values url.Values, body string) (*http.Response, error) {
	request, err := http.NewRequest("POST", c.queryURL+"?"+values.Encode(), bytes.NewBufferString(body))
	if err != nil {
		return nil, errors.Wrap(err, "Error creating request")
	}
	if c.username != "" {
		request.SetBasicAuth(c.username, c.password)
	}

	resp, err := c.client.Do(request)
	if err != nil {
		return nil, errors.Wrap(err, "Error reaching analytical store")
	}
	return resp, nil
}

// Query executes a read query, substituting each {name} placeholder with an
// escaped literal derived from params, and parses the row-oriented response
func (c *Client) Query(sql string, params map[string]interface{}) (*Result, error) {
	rendered := substituteParams(sql, params)
	c.log.Debugf("Executing query: %s", rendered)

	values := url.Values{}
	values.Set("database", c.database)
	values.Set("default_format", "JSONEachRow")

	resp, err := c.do(values, rendered)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &QueryError{StatusCode: resp.StatusCode, Status: resp.Status, Body: string(body)}
	}

	return parseRows(body), nil
}

// parseRows parses a newline-delimited JSON response into rows, falling
// back to a single raw-payload row for any other response format
func parseRows(body []byte) *Result {
	result := &Result{}

	trimmed := strings.TrimSpace(string(body))
	if trimmed == "" {
		return result
	}

	for _, line := range strings.Split(trimmed, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		row := map[string]interface{}{}
		if err := json.Unmarshal([]byte(line), &row); err != nil {
			return &Result{Rows: []map[string]interface{}{{"raw": trimmed}}}
		}
		result.Rows = append(result.Rows, row)
	}
	return result
}

// InsertBatch writes the given rows to a table in a single request using
// newline-delimited JSON.  An empty row list is a no-op and issues no
// network call.
func (c *Client) InsertBatch(table string, rows []map[string]interface{}) error {
	if len(rows) == 0 {
		return nil
	}

	var buf bytes.Buffer
	for _, row := range rows {
		line, err := json.Marshal(row)
		if err != nil {
			return errors.Wrap(err, "Error serializing row for insert")
		}
		buf.Write(line)
		buf.WriteByte('\n')
	}

	values := url.Values{}
	values.Set("database", c.database)
	values.Set("query", fmt.Sprintf("INSERT INTO %s FORMAT JSONEachRow", table))

	resp, err := c.do(values, buf.String())
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(resp.Body)
		return &InsertError{StatusCode: resp.StatusCode, Status: resp.Status, Body: string(body)}
	}

	c.log.Debugf("Successfully wrote %d rows to table %s", len(rows), table)
	return nil
}

// Execute runs a fire-and-forget statement such as a DDL
func (c *Client) Execute(ddl string) error {
	values := url.Values{}
	values.Set("database", c.database)

	resp, err := c.do(values, ddl)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(resp.Body)
		return &ExecuteError{StatusCode: resp.StatusCode, Status: resp.Status, Body: string(body)}
	}
	return nil
}

// Ping issues a trivial query as a liveness probe.  Its contract is a
// health check, not a query, so any error becomes a false rather than
// propagating.
func (c *Client) Ping() bool {
	_, err := c.Query("SELECT 1", nil)
	if err != nil {
		c.log.WithError(err).Debug("Ping failed")
		return false
	}
	return true
}
