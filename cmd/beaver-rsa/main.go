// Command beaver-rsa generates a textbook RSA keypair, encrypts a sample
// message byte by byte and decrypts it again.
//
// Settings come from BEAVER_RSA_* environment variables (see package krypto);
// with -store the keypair is persisted through BEAVER_KEYSTORE_* settings.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/gobeaver/beaver-rsa/keystore"
	"github.com/gobeaver/beaver-rsa/krypto"
)

const defaultMessage = "Lorem ipsum dolor sit amet"

func main() {
	var (
		store   = flag.Bool("store", false, "save the generated keypair in the keystore")
		keyID   = flag.String("key", "", "use a stored keypair instead of generating one")
		label   = flag.String("label", "", "label for the stored keypair")
		message = flag.String("message", "", "message to encrypt (default \""+defaultMessage+"\")")
	)
	flag.Parse()

	cfg, err := krypto.GetConfig()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}
	bench := cfg.Benchmark()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	var kp krypto.Keypair
	if *keyID != "" {
		kp, err = loadKeypair(ctx, *keyID)
	} else {
		kp, err = generate(*cfg, !bench)
	}
	if err != nil {
		log.Fatal(err)
	}

	if *store && *keyID == "" {
		if err := keystore.Init(); err != nil {
			log.Fatalf("init keystore: %v", err)
		}
		defer keystore.Shutdown(context.Background())

		rec, err := keystore.Save(ctx, kp, *label)
		if err != nil {
			log.Fatalf("store keypair: %v", err)
		}
		if !bench {
			fmt.Printf("stored as %s\n", rec.ID)
		}
	}

	var opts []krypto.ServiceOption
	msg := *message
	if bench {
		opts = append(opts, krypto.WithLinearExponentiation())
		if msg == "" {
			msg = "*****"
		}
	}
	if msg == "" {
		msg = defaultMessage
	}

	svc, err := krypto.NewService(kp, opts...)
	if err != nil {
		log.Fatal(err)
	}

	if !bench {
		fmt.Println("-------------")
		fmt.Printf("public key %d\n", kp.E)
		fmt.Printf("private key %d\n", kp.D)
		fmt.Printf("N %d\n", kp.N)
		fmt.Println("-------------")
		fmt.Printf("message: %s\n", msg)
	}

	ciphertext, err := svc.Encrypt([]byte(msg))
	if err != nil {
		log.Fatalf("encrypt: %v", err)
	}

	if !bench {
		words := make([]string, len(ciphertext))
		for i, c := range ciphertext {
			words[i] = fmt.Sprint(c)
		}
		fmt.Printf("encoded message: %s\n", strings.Join(words, "  "))
	}

	decoded, err := svc.Decrypt(ciphertext)
	if err != nil {
		log.Fatalf("decrypt: %v", err)
	}

	if bench {
		fmt.Print(string(decoded))
		return
	}
	fmt.Printf("decoded message: %s\n", decoded)
}

// generate derives a keypair from cfg and prints the intermediate values when verbose.
func generate(cfg krypto.Config, verbose bool) (krypto.Keypair, error) {
	gen, err := krypto.NewFromConfig(cfg)
	if err != nil {
		return krypto.Keypair{}, fmt.Errorf("configure generator: %w", err)
	}

	kp, report, err := gen.GenerateWithReport(cfg.PrimeStart, cfg.PrimeCount)
	if err != nil {
		return krypto.Keypair{}, fmt.Errorf("generate keypair: %w", err)
	}

	if verbose {
		fmt.Printf("p: %d\n", report.P)
		fmt.Printf("q: %d\n", report.Q)
		fmt.Printf("N: %d\n", report.N)
		fmt.Printf("phi_N: %d\n", report.Phi)
		fmt.Printf("e: %d\n", report.E)
		fmt.Printf("d: %d\n", report.D)
		fmt.Printf("k: %d\n", report.K)
		fmt.Printf("gcd(e, phi_N) (has to be 1): %d\n", report.GCD)
	}
	return kp, nil
}

func loadKeypair(ctx context.Context, id string) (krypto.Keypair, error) {
	if err := keystore.Init(); err != nil {
		return krypto.Keypair{}, fmt.Errorf("init keystore: %w", err)
	}
	defer keystore.Shutdown(context.Background())

	rec, err := keystore.Get(ctx, id)
	if err != nil {
		return krypto.Keypair{}, err
	}
	return rec.Keypair(), nil
}
