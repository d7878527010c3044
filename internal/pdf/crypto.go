package pdf

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
)

// ErrPasswordRequired is returned for encrypted documents when no password is given.
var ErrPasswordRequired = errors.New("PDF is password protected")

const decryptedPattern = "meridian-decrypted-*.pdf"

// Credentials contains the passwords for a PDF file.
type Credentials struct {
	UserPassword  string
	OwnerPassword string
}

// IsEncrypted reports whether filename needs a password to be read.
func IsEncrypted(filename string) (bool, error) {
	_, err := api.PageCountFile(filename)
	if err == nil {
		return false, nil
	}
	if IsPasswordError(err) {
		return true, nil
	}
	return false, fmt.Errorf("failed to check PDF encryption status: %w", err)
}

// Decrypt writes a decrypted copy of filename to a temp file and returns its
// path. Callers remove it with RemoveDecrypted.
func Decrypt(filename string, creds Credentials) (string, error) {
	tmp, err := os.CreateTemp("", decryptedPattern)
	if err != nil {
		return "", fmt.Errorf("failed to create temporary file: %w", err)
	}
	_ = tmp.Close()

	conf := model.NewDefaultConfiguration()
	conf.UserPW = creds.UserPassword
	conf.OwnerPW = creds.OwnerPassword

	if err := api.DecryptFile(filename, tmp.Name(), conf); err != nil {
		_ = os.Remove(tmp.Name())
		return "", fmt.Errorf("failed to decrypt PDF: %w", err)
	}
	return tmp.Name(), nil
}

// RemoveDecrypted deletes a file created by Decrypt. Other paths are left alone.
func RemoveDecrypted(path string) error {
	if path == "" || !strings.Contains(path, "meridian-decrypted-") || !strings.HasSuffix(path, ".pdf") {
		return nil
	}
	return os.Remove(path)
}

// IsPasswordError checks if an error is related to password/encryption issues.
func IsPasswordError(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, ErrPasswordRequired) {
		return true
	}

	msg := strings.ToLower(err.Error())
	for _, keyword := range []string{"password", "encrypted", "decrypt", "authentication"} {
		if strings.Contains(msg, keyword) {
			return true
		}
	}
	return false
}
