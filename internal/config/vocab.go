package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"provmark/internal/domain"
)

// LoadVocabulary reads category and label names from a YAML file:
//
//	transforms: [AddNeutralEmoji, ChangeHypernym]
//	features: [negation, sarcasm]
//	labels: [neg, pos]
//
// Lists missing from the file keep their defaults. An empty path returns
// the default vocabulary.
func LoadVocabulary(path string) (domain.Vocabulary, error) {
	vocab := domain.DefaultVocabulary()
	if path == "" {
		return vocab, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return vocab, fmt.Errorf("failed to read vocabulary: %w", err)
	}

	var file domain.Vocabulary
	if err := yaml.Unmarshal(data, &file); err != nil {
		return vocab, fmt.Errorf("failed to parse vocabulary %s: %w", path, err)
	}

	if len(file.Transforms) > 0 {
		vocab.Transforms = file.Transforms
	}
	if len(file.Features) > 0 {
		vocab.Features = file.Features
	}
	if len(file.Labels) > 0 {
		vocab.Labels = file.Labels
	}
	return vocab, nil
}
