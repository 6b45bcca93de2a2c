// Package main generates the development TLS material for the storefront
// backend: a CA and a server certificate signed by it, written under the
// "certs" directory. An existing CA is reused so clients that already trust
// it keep working after the server certificate is reissued.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"io/fs"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/atinyakov/storefront/internal/certgen"
)

func main() {
	dir := flag.String("dir", "certs", "output directory")
	hosts := flag.String("hosts", "localhost,127.0.0.1", "comma separated server host names and IPs")
	flag.Parse()

	if err := run(*dir, strings.Split(*hosts, ","), os.Stdout); err != nil {
		log.Fatalf("certgen: %v", err)
	}
}

// run writes ca.crt, ca.key, server.crt and server.key into dir.
func run(dir string, hosts []string, out io.Writer) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create %s: %w", dir, err)
	}
	caCertPath := filepath.Join(dir, "ca.crt")
	caKeyPath := filepath.Join(dir, "ca.key")

	caCert, caKey, err := certgen.LoadCACredentials(caCertPath, caKeyPath)
	switch {
	case err == nil:
		fmt.Fprintln(out, "Reusing CA from", caCertPath)
	case errors.Is(err, fs.ErrNotExist):
		certPEM, keyPEM, err := certgen.GenerateCA("Storefront Dev CA")
		if err != nil {
			return err
		}
		if err := writePair(caCertPath, caKeyPath, certPEM, keyPEM); err != nil {
			return err
		}
		if caCert, caKey, err = certgen.ParseCACredentials(certPEM, keyPEM); err != nil {
			return err
		}
	default:
		return err
	}

	var names []string
	for _, h := range hosts {
		if h = strings.TrimSpace(h); h != "" {
			names = append(names, h)
		}
	}
	certPEM, keyPEM, err := certgen.GenerateServerCertificate(names, caCert, caKey)
	if err != nil {
		return err
	}
	if err := writePair(filepath.Join(dir, "server.crt"), filepath.Join(dir, "server.key"), certPEM, keyPEM); err != nil {
		return err
	}

	fmt.Fprintf(out, "Certificates for %s generated into %s\n", strings.Join(names, ", "), dir)
	return nil
}

// writePair writes a certificate (world readable) and its key (owner only).
func writePair(certPath, keyPath string, certPEM, keyPEM []byte) error {
	if err := os.WriteFile(certPath, certPEM, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", certPath, err)
	}
	if err := os.WriteFile(keyPath, keyPEM, 0o600); err != nil {
		return fmt.Errorf("write %s: %w", keyPath, err)
	}
	return nil
}
