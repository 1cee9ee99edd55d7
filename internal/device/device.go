package device

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"

	securejoin "github.com/cyphar/filepath-securejoin"
	"github.com/segmentio/encoding/json"

	"github.com/edge-node/edge-launcher/internal/docker"
	"github.com/edge-node/edge-launcher/internal/logging"
	"github.com/edge-node/edge-launcher/internal/system"
)

const (
	MainnetStakingURL = "https://wallet.xe.network/staking"
	TestnetStakingURL = "https://wallet.test.network/staking"
)

// Identity is the key material of an Edge device.
type Identity struct {
	Network    string
	Address    string
	PrivateKey string
	PublicKey  string
}

// Validate checks that the identity can be provisioned.
func (id Identity) Validate() error {
	if _, err := StakingWalletURL(id.Network); err != nil {
		return err
	}
	if id.Address == "" {
		return errors.New("device address is required")
	}
	if id.PrivateKey == "" {
		return errors.New("device private key is required")
	}
	if id.PublicKey == "" {
		return errors.New("device public key is required")
	}
	return nil
}

// files returns the identity as the file name/content pairs the device
// container reads.
func (id Identity) files() [][2]string {
	return [][2]string{
		{"network", id.Network},
		{"address", id.Address},
		{"privateKey", id.PrivateKey},
		{"publicKey", id.PublicKey},
	}
}

type tokenPayload struct {
	Address    string `json:"address"`
	PrivateKey string `json:"privateKey"`
}

// Token encodes the device token pasted into the staking wallet: the
// unpadded base64url of {"address":...,"privateKey":...}.
func Token(address, privateKey string) (string, error) {
	data, err := json.Marshal(tokenPayload{Address: address, PrivateKey: privateKey})
	if err != nil {
		return "", fmt.Errorf("failed to encode device token: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(data), nil
}

// StakingWalletURL returns the staking page of network's wallet.
func StakingWalletURL(network string) (string, error) {
	switch network {
	case "mainnet":
		return MainnetStakingURL, nil
	case "testnet":
		return TestnetStakingURL, nil
	default:
		return "", fmt.Errorf("could not derive wallet url for network %q", network)
	}
}

// VolumeWriter copies host files into a docker volume.
type VolumeWriter interface {
	CopyToVolume(ctx context.Context, volume string, files []string) error
}

// Provisioner stages a device identity in the Edge device data volume.
type Provisioner struct {
	FS      system.FileSystem
	Docker  VolumeWriter
	DataDir string

	// Volume defaults to docker.DeviceDataVolume.
	Volume string
}

// Result is what the user needs to finish assigning the device.
type Result struct {
	Token     string `json:"token" yaml:"token"`
	WalletURL string `json:"wallet_url" yaml:"wallet_url"`
	Message   string `json:"message" yaml:"message"`
}

// Provision writes the identity files into DataDir, copies them into the
// device data volume, and deletes them again. The files are removed even
// when the copy fails.
func (p *Provisioner) Provision(ctx context.Context, id Identity) (_ *Result, err error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	walletURL, _ := StakingWalletURL(id.Network)
	token, err := Token(id.Address, id.PrivateKey)
	if err != nil {
		return nil, err
	}

	if err := p.FS.MkdirAll(p.DataDir, 0700); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	var written []string
	defer func() {
		for _, path := range written {
			if rmErr := p.FS.Remove(path); rmErr != nil {
				logging.Warn("failed to remove device file", "path", path, "error", rmErr)
				err = errors.Join(err, fmt.Errorf("unable to delete file %s: %w", path, rmErr))
			} else {
				logging.Debug("removed device file", "path", path)
			}
		}
	}()

	for _, f := range id.files() {
		path, err := securejoin.SecureJoin(p.DataDir, f[0])
		if err != nil {
			return nil, fmt.Errorf("invalid device file path: %w", err)
		}
		if err := p.FS.WriteFile(path, []byte(f[1]), 0600); err != nil {
			return nil, fmt.Errorf("unable to write file %s: %w", path, err)
		}
		written = append(written, path)
	}

	volume := p.Volume
	if volume == "" {
		volume = docker.DeviceDataVolume
	}
	if err := p.Docker.CopyToVolume(ctx, volume, written); err != nil {
		return nil, fmt.Errorf("copy device data: %w", err)
	}

	logging.Debug("device data provisioned", "network", id.Network, "address", id.Address, "wallet_url", walletURL)

	return &Result{
		Token:     token,
		WalletURL: walletURL,
		Message:   fmt.Sprintf("Please assign your device token at %s. Your device token is: %s", walletURL, token),
	}, nil
}
