// Package envfile reads dotenv-style configuration files. Reading returns
// the parsed key/value map without touching the process environment; only
// the explicit Load functions write into it.
package envfile

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

// EncryptedSuffix marks env files stored encrypted on disk.
const EncryptedSuffix = ".enc"

// Read parses the env file and returns its key/value pairs.
func Read(path string) (map[string]string, error) {
	vars, err := godotenv.Read(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read env file %s: %w", path, err)
	}
	return vars, nil
}

// Load parses the env file and writes its pairs into the process
// environment. Variables already set in the environment win.
func Load(path string) error {
	if err := godotenv.Load(path); err != nil {
		return fmt.Errorf("failed to load env file %s: %w", path, err)
	}
	return nil
}

// CountEntries counts the non-blank, non-comment lines of an env file.
func CountEntries(path string) (int, error) {
	file, err := os.Open(path)
	if err != nil {
		return 0, fmt.Errorf("failed to open env file %s: %w", path, err)
	}
	defer file.Close()

	count := 0
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		count++
	}
	if err := scanner.Err(); err != nil {
		return 0, fmt.Errorf("failed to scan env file %s: %w", path, err)
	}

	return count, nil
}

// ReadEncrypted decrypts a secretbox-encrypted env file and parses it.
func ReadEncrypted(path, passphrase string) (map[string]string, error) {
	encrypted, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read encrypted env file %s: %w", path, err)
	}

	key := DeriveKey(passphrase)
	plaintext, err := Decrypt(encrypted, &key)
	if err != nil {
		return nil, fmt.Errorf("failed to decrypt env file %s: %w", path, err)
	}

	vars, err := godotenv.Unmarshal(string(plaintext))
	if err != nil {
		return nil, fmt.Errorf("failed to parse decrypted env file %s: %w", path, err)
	}

	return vars, nil
}

// LoadEncrypted decrypts an env file and writes its pairs into the process
// environment, with the same already-set-wins semantics as Load.
func LoadEncrypted(path, passphrase string) error {
	vars, err := ReadEncrypted(path, passphrase)
	if err != nil {
		return err
	}

	for k, v := range vars {
		if _, exists := os.LookupEnv(k); exists {
			continue
		}
		if err := os.Setenv(k, v); err != nil {
			return fmt.Errorf("failed to set %s: %w", k, err)
		}
	}

	return nil
}

// EncryptFile encrypts a plaintext env file with the passphrase and writes
// the result to dst. The source must parse as a dotenv file first, so
// broken files are rejected before they are sealed.
func EncryptFile(src, dst, passphrase string) error {
	vars, err := Read(src)
	if err != nil {
		return err
	}

	plaintext, err := godotenv.Marshal(vars)
	if err != nil {
		return fmt.Errorf("failed to serialize env file %s: %w", src, err)
	}

	key := DeriveKey(passphrase)
	encrypted, err := Encrypt([]byte(plaintext), &key)
	if err != nil {
		return fmt.Errorf("failed to encrypt env file %s: %w", src, err)
	}

	if err := os.WriteFile(dst, encrypted, 0o600); err != nil {
		return fmt.Errorf("failed to write encrypted env file %s: %w", dst, err)
	}

	return nil
}
