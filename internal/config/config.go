package config

import (
	"errors"
	"log"
	"net"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	defaultListenAddr        = "127.0.0.1:8080"
	defaultRefreshDebounceMS = 500
	defaultMetadataFilename  = "podcast.yaml"
)

// LoadEnvFile merges a .env file from the working directory into the
// environment when one exists. Real environment variables win.
func LoadEnvFile(logger *log.Logger) {
	if logger == nil {
		logger = log.Default()
	}
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		logger.Printf(".env load error: %v", err)
	}
}

// ResolveAudioRoot returns the directory that should be scanned for audio
// files. The directory is created when it does not yet exist.
func ResolveAudioRoot() (string, error) {
	dir := strings.TrimSpace(os.Getenv("PODCAST_AUDIO_DIR"))
	if dir == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return "", err
		}
		dir = filepath.Join(cwd, "audio")
	}

	abs, err := expandPath(dir)
	if err != nil {
		return "", err
	}

	if err := os.MkdirAll(abs, 0o755); err != nil {
		return "", err
	}

	return abs, nil
}

// ResolveAssetManifest returns the hosted-asset manifest path when the
// server should run against platform-hosted files instead of a local
// directory. The second return value reports whether hosted mode is active.
func ResolveAssetManifest() (string, bool, error) {
	path := strings.TrimSpace(os.Getenv("PODCAST_ASSET_MANIFEST"))
	if path == "" {
		return "", false, nil
	}

	abs, err := expandPath(path)
	if err != nil {
		return "", false, err
	}
	return abs, true, nil
}

// ResolveMetadataFile returns the path of the YAML metadata document. The
// default sits next to the audio files; in hosted mode it falls back to the
// working directory.
func ResolveMetadataFile(audioRoot string) (string, error) {
	path := strings.TrimSpace(os.Getenv("PODCAST_METADATA_FILE"))
	if path == "" {
		if audioRoot != "" {
			return filepath.Join(audioRoot, defaultMetadataFilename), nil
		}
		path = defaultMetadataFilename
	}
	return expandPath(path)
}

// ResolveToken returns the shared access token configured directly in the
// environment, if any.
func ResolveToken() (string, bool) {
	token := strings.TrimSpace(os.Getenv("PODCAST_TOKEN"))
	return token, token != ""
}

// ResolveTokenFile returns the absolute path to the feed token file when
// configured. The file is created if it does not already exist. When no
// file is configured the second return value will be false.
func ResolveTokenFile() (string, bool, error) {
	path := strings.TrimSpace(os.Getenv("PODCAST_TOKEN_FILE"))
	if path == "" {
		return "", false, nil
	}

	abs, err := expandPath(path)
	if err != nil {
		return "", false, err
	}

	if err := os.MkdirAll(filepath.Dir(abs), 0o755); err != nil {
		return "", false, err
	}

	if _, err := os.Stat(abs); err != nil {
		if os.IsNotExist(err) {
			file, err := os.OpenFile(abs, os.O_CREATE|os.O_RDWR, 0o600)
			if err != nil {
				return "", false, err
			}
			if err := file.Close(); err != nil {
				return "", false, err
			}
		} else {
			return "", false, err
		}
	}

	return abs, true, nil
}

// ListenAddr returns the TCP address the HTTP server should bind to.
func ListenAddr() string {
	addr := strings.TrimSpace(os.Getenv("PODCAST_LISTEN_ADDR"))
	if addr == "" {
		return defaultListenAddr
	}
	return addr
}

// ValidateListenAddr ensures the configured listen address is host:port
// shaped before the server tries to bind it.
func ValidateListenAddr(addr string) error {
	_, port, err := net.SplitHostPort(strings.TrimSpace(addr))
	if err != nil {
		return err
	}
	if port == "" {
		return errors.New("listen address must include a port")
	}
	return nil
}

// RefreshDebounce returns the duration to wait before reloading the token
// file after file-system change events.
func RefreshDebounce() time.Duration {
	value := strings.TrimSpace(os.Getenv("PODCAST_REFRESH_DEBOUNCE_MS"))
	if value == "" {
		return time.Duration(defaultRefreshDebounceMS) * time.Millisecond
	}

	ms, err := strconv.Atoi(value)
	if err != nil || ms < 0 {
		return time.Duration(defaultRefreshDebounceMS) * time.Millisecond
	}
	return time.Duration(ms) * time.Millisecond
}

func expandPath(path string) (string, error) {
	if strings.HasPrefix(path, "~") {
		home, err := os.UserHomeDir()
		if err == nil {
			path = filepath.Join(home, path[1:])
		}
	}
	return filepath.Abs(path)
}
