package config

import (
	"fmt"
	"os"

	"golang.org/x/crypto/pkcs12"
)

// CheckCertificate verifies that the PKCS#12 client certificate exists, is
// readable and can be decrypted with the given password. The bank API rejects
// every call without a valid client certificate, so this runs before any
// network traffic.
func CheckCertificate(certFile, password string) error {
	content, err := os.ReadFile(certFile)
	if err != nil {
		return fmt.Errorf("cannot read certificate file %s: %w", certFile, err)
	}

	if _, _, err := pkcs12.Decode(content, password); err != nil {
		return fmt.Errorf("cannot decode PKCS#12 certificate %s: %w", certFile, err)
	}

	return nil
}
