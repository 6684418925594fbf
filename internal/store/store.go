package store

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/plumber-cd/ez-pipeline/internal/domain"
	"sigs.k8s.io/yaml"
)

const (
	DataDirName     = ".ez-pipeline"
	ProfileFileName = "profile.yaml"
)

// ProfilePath returns the profile file location inside dir.
func ProfilePath(dir string) string {
	return filepath.Join(dir, DataDirName, ProfileFileName)
}

// Load reads the profile from dir. A missing profile yields the factory
// profile. Fields absent from the file keep their factory values.
func Load(dir string) (domain.Profile, error) {
	profile := domain.FactoryProfile()

	path := ProfilePath(dir)
	bytes, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return profile, nil
		}
		return domain.Profile{}, fmt.Errorf("read %s: %w", path, err)
	}

	if err := yaml.Unmarshal(bytes, &profile); err != nil {
		return domain.Profile{}, fmt.Errorf("unmarshal %s: %w", path, err)
	}
	if err := profile.Validate(); err != nil {
		return domain.Profile{}, fmt.Errorf("validate %s: %w", path, err)
	}

	return profile, nil
}

// Save validates and writes the profile using an atomic rename.
func Save(dir string, profile domain.Profile) error {
	if err := profile.Validate(); err != nil {
		return fmt.Errorf("validate profile: %w", err)
	}

	dataDir := filepath.Join(dir, DataDirName)
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return fmt.Errorf("create %s: %w", dataDir, err)
	}

	path := ProfilePath(dir)
	tmpPath := path + ".tmp"
	if err := writeYAML(tmpPath, profile); err != nil {
		return err
	}
	if err := os.Rename(tmpPath, path); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("rename %s to %s: %w", tmpPath, path, err)
	}
	return nil
}

// Exists reports whether a profile file is present in dir.
func Exists(dir string) (bool, error) {
	_, err := os.Stat(ProfilePath(dir))
	if err == nil {
		return true, nil
	}
	if os.IsNotExist(err) {
		return false, nil
	}
	return false, fmt.Errorf("stat %s: %w", ProfilePath(dir), err)
}

func writeYAML(fileName string, v interface{}) error {
	bytes, err := yaml.Marshal(v)
	if err != nil {
		return fmt.Errorf("marshal %T: %w", v, err)
	}
	if err := os.WriteFile(fileName, bytes, 0644); err != nil {
		return fmt.Errorf("write %s: %w", fileName, err)
	}
	return nil
}
