// Package device prepares an Edge device identity.
//
// Provision writes the network, address, privateKey and publicKey files,
// copies them into the edge-device-data docker volume and removes the
// host copies. The returned Result carries the device token the user
// pastes into the staking wallet.
package device
