// Command dirseal encrypts a plaintext JSON client directory into the blob
// served by the bot. It is the producer side of the directory pipeline: the
// bot only ever reads the sealed output.
//
// Usage:
//
//	dirseal -in clients.json -out directory.enc
//
// Key material is taken from the same DIRECTORY_KEY / PASSPHRASE / KEY_SALT
// environment variables the bot reads, so the two sides cannot drift apart.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"os"

	"github.com/MKhiriev/go-directory-bot/internal/crypto"
	"github.com/MKhiriev/go-directory-bot/internal/logger"
	"github.com/MKhiriev/go-directory-bot/internal/store"
	"github.com/MKhiriev/go-directory-bot/models"
)

func main() {
	var (
		in         = flag.String("in", "", "path of the plaintext JSON records file")
		out        = flag.String("out", "", "path of the encrypted directory blob")
		key        = flag.String("key", os.Getenv("DIRECTORY_KEY"), "Base64-encoded 32-byte AES key")
		passphrase = flag.String("passphrase", os.Getenv("PASSPHRASE"), "key-derivation passphrase, used when -key is empty")
		keySalt    = flag.String("key-salt", os.Getenv("KEY_SALT"), "key-derivation salt, required with -passphrase")
	)
	flag.Parse()

	log := logger.NewLogger("dirseal")

	if *in == "" || *out == "" {
		flag.Usage()
		os.Exit(2)
	}

	aesKey, err := crypto.ResolveKey(*key, *passphrase, *keySalt)
	if err != nil {
		log.Fatal().Err(err).Msg("error resolving directory key")
	}
	cipher, err := crypto.NewCipherService(aesKey)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating cipher service")
	}

	raw, err := os.ReadFile(*in)
	if err != nil {
		log.Fatal().Err(err).Msg("error reading records file")
	}

	var records []models.ClientRecord
	if err = json.Unmarshal(raw, &records); err != nil {
		log.Fatal().Err(err).Msg("records file is not a JSON array of client records")
	}

	records, nameless := normalizeRecords(records)
	if nameless > 0 {
		log.Warn().Int("count", nameless).Msg("records without a name are sealed but the bot will discard them")
	}

	plaintext, err := json.Marshal(records)
	if err != nil {
		log.Fatal().Err(err).Msg("error marshalling records")
	}

	payload, err := cipher.Encrypt(plaintext)
	if err != nil {
		log.Fatal().Err(err).Msg("error encrypting records")
	}

	blob := store.NewBlobFileStorage(*out, log)
	if err = blob.WritePayload(context.Background(), payload); err != nil {
		log.Fatal().Err(err).Msg("error writing directory blob")
	}

	log.Info().Int("records", len(records)).Str("out", *out).Msg("directory sealed")
}

// normalizeRecords trims every record in place and counts the ones left
// without a name; those are sealed anyway, the bot discards them at load.
func normalizeRecords(records []models.ClientRecord) ([]models.ClientRecord, int) {
	nameless := 0
	for i := range records {
		records[i] = records[i].Normalize()
		if !records[i].Valid() {
			nameless++
		}
	}
	return records, nameless
}
