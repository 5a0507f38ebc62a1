package pinata

import (
	"bytes"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
)

const apiBaseURL = "https://api.pinata.cloud"

// Client pins NFT assets and metadata to IPFS via Pinata
type Client struct {
	httpClient *resty.Client
	gateway    string
}

// NewClient creates a Pinata client authenticated with a JWT
func NewClient(jwt, gateway string) *Client {
	client := resty.New().
		SetBaseURL(apiBaseURL).
		SetTimeout(60 * time.Second).
		SetRetryCount(2).
		SetRetryWaitTime(2 * time.Second).
		SetAuthToken(jwt)

	return &Client{
		httpClient: client,
		gateway:    gateway,
	}
}

type pinResponse struct {
	IpfsHash string `json:"IpfsHash"`
}

// PinFile uploads raw bytes and returns the resulting CID
func (c *Client) PinFile(name string, data []byte) (string, error) {
	var result pinResponse
	resp, err := c.httpClient.R().
		SetFileReader("file", name, bytes.NewReader(data)).
		SetResult(&result).
		Post("/pinning/pinFileToIPFS")

	if err != nil {
		return "", fmt.Errorf("error al subir archivo a Pinata: %w", err)
	}
	if resp.IsError() {
		return "", fmt.Errorf("Pinata rechazó el archivo: %s", resp.Status())
	}

	return result.IpfsHash, nil
}

// Metadata is the ERC-721 metadata document
type Metadata struct {
	Name        string      `json:"name"`
	Description string      `json:"description"`
	Image       string      `json:"image"`
	Attributes  []Attribute `json:"attributes,omitempty"`
}

// Attribute is a single ERC-721 trait
type Attribute struct {
	TraitType string `json:"trait_type"`
	Value     string `json:"value"`
}

// PinJSON uploads a metadata document and returns the resulting CID
func (c *Client) PinJSON(name string, metadata *Metadata) (string, error) {
	body := map[string]interface{}{
		"pinataMetadata": map[string]string{"name": name},
		"pinataContent":  metadata,
	}

	var result pinResponse
	resp, err := c.httpClient.R().
		SetHeader("Content-Type", "application/json").
		SetBody(body).
		SetResult(&result).
		Post("/pinning/pinJSONToIPFS")

	if err != nil {
		return "", fmt.Errorf("error al subir metadata a Pinata: %w", err)
	}
	if resp.IsError() {
		return "", fmt.Errorf("Pinata rechazó la metadata: %s", resp.Status())
	}

	return result.IpfsHash, nil
}

// GatewayURL builds a public gateway URL for a CID
func (c *Client) GatewayURL(cid string) string {
	return fmt.Sprintf("https://%s/ipfs/%s", c.gateway, cid)
}

// IpfsURI builds the canonical ipfs:// URI for a CID
func (c *Client) IpfsURI(cid string) string {
	return "ipfs://" + cid
}
