package params

import (
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/gofrs/flock"
	"github.com/pkg/errors"
)

var ParamsPath string = DefaultParamsPath()

// Params
const (
	PROFILE_SETTINGS = "ProfileSettings"
	LAST_PROFILE     = "LastProfile"
)

const lockRetries = 50

// DefaultParamsPath is $SCURVE_PARAMS_PATH, falling back to the user config directory.
func DefaultParamsPath() string {
	if path := os.Getenv("SCURVE_PARAMS_PATH"); path != "" {
		return path
	}
	dir, err := os.UserConfigDir()
	if err != nil {
		slog.Warn("could not find user config directory", "error", err)
		return filepath.Join(".", ".scurve", "params")
	}
	return filepath.Join(dir, "scurve", "params")
}

// exists returns whether the given file or directory exists
func Exists(path string) (bool, error) {
	_, err := os.Stat(path)
	if err == nil {
		return true, nil
	}
	if os.IsNotExist(err) {
		return false, nil
	}
	return false, errors.Wrap(err, "could not check param file stats")
}

func EnsureParamDirectories() error {
	err := os.MkdirAll(ParamsPath, 0o775)
	if err != nil {
		return errors.Wrapf(err, "could not make params directory %s", ParamsPath)
	}
	return nil
}

func IsString(data []byte) bool {
	for _, b := range data {
		if (b < 32 || b > 126) && !(b == 9 || b == 13 || b == 10) {
			return false
		}
	}
	return true
}

func GetParams() ([]string, error) {
	files, err := os.ReadDir(ParamsPath)
	if os.IsNotExist(err) {
		return []string{}, nil
	}
	if err != nil {
		return nil, errors.Wrap(err, "could not read params directory")
	}

	paramFiles := []string{}
	for _, file := range files {
		name := file.Name()
		if file.Type().IsRegular() && name[0] != '.' {
			paramFiles = append(paramFiles, name)
		}
	}
	sort.Strings(paramFiles)

	return paramFiles, nil
}

func ParamPath(name string) string {
	return filepath.Join(ParamsPath, name)
}

func GetParam(name string) ([]byte, error) {
	data, err := os.ReadFile(ParamPath(name))
	if err != nil {
		return nil, errors.Wrapf(err, "could not read param %s", name)
	}
	return data, nil
}

// lock takes the params lock, which lives next to the params directory.
func lock() (unlock func(), err error) {
	lockPath := filepath.Join(filepath.Dir(ParamsPath), ".lock")
	fileLock := flock.New(lockPath)

	retries := 0
	for {
		locked, err := fileLock.TryLock()
		if err != nil {
			return nil, errors.Wrap(err, "could not try locking params directory")
		}
		if locked {
			break
		}
		retries += 1
		if retries > 30 {
			// try to force the lock to be removed
			if err := os.Remove(lockPath); err != nil {
				slog.Debug("failed to force delete params lock", "error", err)
			}
		}
		if retries > lockRetries {
			return nil, errors.New("could not obtain lock")
		}
		time.Sleep(1 * time.Millisecond)
	}

	return func() {
		if err := os.Remove(lockPath); err != nil {
			slog.Error("could not remove params lock file", "error", err)
		}
		if err := fileLock.Unlock(); err != nil {
			slog.Error("could not unlock params directory", "error", err)
		}
	}, nil
}

func syncDir(dir string) error {
	directory, err := os.Open(dir)
	if err != nil {
		return errors.Wrap(err, "could not open params directory")
	}
	defer directory.Close()

	err = directory.Sync()
	if err != nil {
		return errors.Wrap(err, "could not fsync params directory")
	}
	return nil
}

// PutParam atomically replaces the named param with data.
func PutParam(name string, data []byte) error {
	if err := EnsureParamDirectories(); err != nil {
		return err
	}

	path := ParamPath(name)
	file, err := os.CreateTemp(ParamsPath, ".tmp_value_"+name)
	if err != nil {
		return errors.Wrap(err, "could not create temp param file")
	}
	tmpName := file.Name()
	defer os.Remove(tmpName)
	defer file.Close()

	_, err = file.Write(data)
	if err != nil {
		return errors.Wrap(err, "could not write data to temp param file")
	}

	err = file.Sync()
	if err != nil {
		return errors.Wrap(err, "could not fsync temp param file")
	}

	unlock, err := lock()
	if err != nil {
		return err
	}
	defer unlock()

	err = os.Rename(tmpName, path)
	if err != nil {
		return errors.Wrap(err, "could not move temp param file to persistent location")
	}

	return syncDir(ParamsPath)
}

func RemoveParam(name string) error {
	unlock, err := lock()
	if err != nil {
		return err
	}
	defer unlock()

	err = os.Remove(ParamPath(name))
	if err != nil && !os.IsNotExist(err) {
		return errors.Wrapf(err, "could not remove param %s", name)
	}

	return syncDir(ParamsPath)
}
