package network

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"lifex.health/infrastructure/logger"
)

type NetworkController struct {
	BaseUrl string
	Client  *http.Client
}

func (network *NetworkController) httpClient() *http.Client {
	if network.Client == nil {
		network.Client = &http.Client{Timeout: 20 * time.Second}
	}
	return network.Client
}

func (network *NetworkController) Post(path string, headers *map[string]string, body any) (*[]byte, *int, error) {
	payload, err := json.Marshal(body)
	if err != nil {
		return nil, nil, err
	}

	req, err := http.NewRequest(http.MethodPost, fmt.Sprintf("%s%s", network.BaseUrl, path), bytes.NewBuffer(payload))
	if err != nil {
		return nil, nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	if headers != nil {
		for key, value := range *headers {
			req.Header.Set(key, value)
		}
	}

	return network.do(req)
}

func (network *NetworkController) Get(path string, headers *map[string]string) (*[]byte, *int, error) {
	req, err := http.NewRequest(http.MethodGet, fmt.Sprintf("%s%s", network.BaseUrl, path), nil)
	if err != nil {
		return nil, nil, err
	}
	if headers != nil {
		for key, value := range *headers {
			req.Header.Set(key, value)
		}
	}

	return network.do(req)
}

func (network *NetworkController) do(req *http.Request) (*[]byte, *int, error) {
	res, err := network.httpClient().Do(req)
	if err != nil {
		logger.Error("network request failed", logger.LoggerOptions{
			Key:  "error",
			Data: err,
		}, logger.LoggerOptions{
			Key:  "url",
			Data: req.URL.String(),
		})
		return nil, nil, err
	}
	defer res.Body.Close()

	resBody, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, &res.StatusCode, err
	}
	return &resBody, &res.StatusCode, nil
}
