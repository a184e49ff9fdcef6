package internal

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	models "github.com/rm-hull/frame-interpolator/internal/models/frames"
	log "github.com/sirupsen/logrus"
)

type HTTPDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

// FramesClient talks to the api-server of another frame-interpolator
// instance.
type FramesClient interface {
	GetInfo() (*models.Info, error)
	GetFrame(index int) (io.ReadCloser, error)
	GetBlend(from, to int, t float64) (io.ReadCloser, error)
}

type FramesManager struct {
	baseUrl string
	client  HTTPDoer
}

func NewFramesClient(baseUrl string) FramesClient {
	return &FramesManager{
		baseUrl: strings.TrimSuffix(baseUrl, "/"),
		client:  &http.Client{},
	}
}

func (mgr *FramesManager) GetInfo() (*models.Info, error) {
	url := fmt.Sprintf("%s/v1/frames", mgr.baseUrl)
	body, err := mgr.get(url, "application/json")
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = body.Close()
	}()

	var resp models.Info
	decoder := json.NewDecoder(body)
	if err := decoder.Decode(&resp); err != nil {
		return nil, fmt.Errorf("failed to unmarshal response: %w", err)
	}

	return &resp, nil
}

func (mgr *FramesManager) GetFrame(index int) (io.ReadCloser, error) {
	url := fmt.Sprintf("%s/v1/frames/%d", mgr.baseUrl, index)
	return mgr.get(url, "image/png")
}

func (mgr *FramesManager) GetBlend(from, to int, t float64) (io.ReadCloser, error) {
	url := fmt.Sprintf("%s/v1/blend?from=%d&to=%d&t=%g", mgr.baseUrl, from, to, t)
	return mgr.get(url, "image/png")
}

func (mgr *FramesManager) get(url string, acceptHeader string) (io.ReadCloser, error) {
	log.Debugf("Retrieving: %s", url)
	req, err := http.NewRequest(http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", acceptHeader)

	res, err := mgr.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch from %s: %w", url, err)
	}

	if res.StatusCode > 299 {
		_ = res.Body.Close()
		return nil, fmt.Errorf("http status response from %s: %s", url, res.Status)
	}

	return res.Body, nil
}
