// Package config manages the persistent fsradio configuration file.
//
// The configuration stores known Frontier Silicon devices (host, PIN,
// resolved API URL, nickname) and application preferences such as the
// default device and discovery timeout. The file lives in the platform
// configuration directory (e.g. ~/.config/fsradio/config.yaml on Linux)
// and is written atomically via a temp file and rename.
//
// The device PIN stored here is the radio's local access PIN (factory
// default 1234); it gates LAN access to the control API and is not a
// secret credential in the usual sense.
package config
