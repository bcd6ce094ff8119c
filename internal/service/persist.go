package service

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"

	"github.com/complior/engine/internal/apperr"
)

// Onboarding and sharing are external-collaborator contracts (§1
// Non-goals name the demo/landing pages and badge renderer as external);
// the engine's job is only to persist and return well-formed JSON for
// whatever external UI drives them.

func (s *Service) statePath(parts ...string) string {
	return filepath.Join(append([]string{s.State.ProjectPath, ".complior"}, parts...)...)
}

// Profile returns the onboarding profile, or an empty object if none has
// been saved yet.
func (s *Service) Profile() (map[string]interface{}, error) {
	path := s.statePath("profile.json")
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return map[string]interface{}{}, nil
	}
	if err != nil {
		return nil, apperr.ScanErr("profile_read_failed", "failed to read onboarding profile", err)
	}
	var profile map[string]interface{}
	if err := json.Unmarshal(data, &profile); err != nil {
		return nil, apperr.Validation("profile_corrupt", "stored onboarding profile is not valid JSON")
	}
	return profile, nil
}

// SaveProfile merges answers into the stored onboarding profile and
// persists it.
func (s *Service) SaveProfile(answers map[string]interface{}) (map[string]interface{}, error) {
	profile, err := s.Profile()
	if err != nil {
		return nil, err
	}
	for k, v := range answers {
		profile[k] = v
	}
	path := s.statePath("profile.json")
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, apperr.ScanErr("profile_write_failed", "failed to persist onboarding profile", err)
	}
	data, err := json.MarshalIndent(profile, "", "  ")
	if err != nil {
		return nil, apperr.ScanErr("profile_write_failed", "failed to persist onboarding profile", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return nil, apperr.ScanErr("profile_write_failed", "failed to persist onboarding profile", err)
	}
	return profile, nil
}

// CreateShare persists an arbitrary share payload (e.g. a score summary
// for a public badge/link) and returns its id.
func (s *Service) CreateShare(payload map[string]interface{}) (string, error) {
	id := uuid.NewString()
	dir := s.statePath("shares")
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", apperr.ScanErr("share_write_failed", "failed to persist share payload", err)
	}
	data, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return "", apperr.ScanErr("share_write_failed", "failed to persist share payload", err)
	}
	if err := os.WriteFile(filepath.Join(dir, id+".json"), data, 0644); err != nil {
		return "", apperr.ScanErr("share_write_failed", "failed to persist share payload", err)
	}
	return id, nil
}

// GetShare loads a previously created share payload by id.
func (s *Service) GetShare(id string) (map[string]interface{}, error) {
	path := s.statePath("shares", id+".json")
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, apperr.NotFound("share_not_found", fmt.Sprintf("no share with id %q", id))
	}
	if err != nil {
		return nil, apperr.ScanErr("share_read_failed", "failed to read share payload", err)
	}
	var payload map[string]interface{}
	if err := json.Unmarshal(data, &payload); err != nil {
		return nil, apperr.Validation("share_corrupt", "stored share payload is not valid JSON")
	}
	return payload, nil
}
