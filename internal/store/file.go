package store

import (
	"context"
	"io/ioutil"
	"os"
	"path/filepath"
	"sync"

	"twitch_vatsim_stats/internal/models"

	jsoniter "github.com/json-iterator/go"
	"github.com/pkg/errors"
)

// FileStore keeps the settings as a JSON document. It is safe within one process only.
type FileStore struct {
	path string
	mu   sync.Mutex
}

func NewFileStore(path string) *FileStore {
	return &FileStore{
		path: path,
	}
}

func (fs *FileStore) Path() string {
	return fs.path
}

func (fs *FileStore) Get(ctx context.Context) (models.Settings, error) {
	fs.mu.Lock()
	defer fs.mu.Unlock()

	return fs.load()
}

func (fs *FileStore) Update(ctx context.Context, apply func(*models.Settings) error) (models.Settings, error) {
	fs.mu.Lock()
	defer fs.mu.Unlock()

	settings, err := fs.load()
	if err != nil {
		return models.Settings{}, err
	}

	if err = apply(&settings); err != nil {
		return models.Settings{}, err
	}
	normalize(&settings)

	if err = fs.save(settings); err != nil {
		return models.Settings{}, err
	}

	return settings, nil
}

func (fs *FileStore) load() (settings models.Settings, err error) {
	data, err := ioutil.ReadFile(fs.path)
	if os.IsNotExist(err) {
		normalize(&settings)
		return settings, nil
	}
	if err != nil {
		return models.Settings{}, errors.Wrap(err, "read settings")
	}

	if err = jsoniter.Unmarshal(data, &settings); err != nil {
		return models.Settings{}, errors.Wrap(err, "decode settings")
	}
	normalize(&settings)

	return settings, nil
}

func (fs *FileStore) save(settings models.Settings) error {
	data, err := jsoniter.MarshalIndent(settings, "", "  ")
	if err != nil {
		return errors.Wrap(err, "encode settings")
	}

	dir := filepath.Dir(fs.path)
	if err = os.MkdirAll(dir, 0o755); err != nil {
		return errors.Wrap(err, "create settings directory")
	}

	// rename keeps readers from seeing a half written file
	tmp, err := ioutil.TempFile(dir, ".settings-*.json")
	if err != nil {
		return errors.Wrap(err, "create temp settings file")
	}
	defer os.Remove(tmp.Name())

	if _, err = tmp.Write(data); err != nil {
		tmp.Close()
		return errors.Wrap(err, "write settings")
	}
	if err = tmp.Close(); err != nil {
		return errors.Wrap(err, "close settings")
	}
	if err = os.Chmod(tmp.Name(), 0o600); err != nil {
		return errors.Wrap(err, "chmod settings")
	}

	return errors.Wrap(os.Rename(tmp.Name(), fs.path), "rename settings")
}
