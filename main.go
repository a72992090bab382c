package main

import (
	"bytes"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/ledgerwatch/log/v3"

	"github.com/nPaBwaYT/OKDes/cripta"
	"github.com/nPaBwaYT/OKDes/keymerge"
)

/*
Шифрование текстового файла DES (результат - hex)
go run . -e -k=secret input.txt output.hex

Дешифрование
go run . -d -k=secret output.hex input.txt

Ключ из двух частей (хэш от конкатенации)
go run . -e -k=alice -k2=bob -hash=sha3 input.txt output.hex

Параллельная обработка блоков
go run . -e -k=secret -parallel -workers=4 input.txt output.hex

Раундовые ключи
go run . -s -k=secret

Режимы набивки: zeros, retain, pkcs7, ansi, iso
Вместо файла можно указать "-" (stdin/stdout). Ключ также берется из DES_KEY.
*/

const keyEnv = "DES_KEY"

const (
	exitOK = iota
	exitUsage
	exitValidation
	exitFormat
	exitDecode
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

type options struct {
	encrypt  bool
	decrypt  bool
	schedule bool
	key      string
	key2     string
	hash     string
	padding  string
	parallel bool
	workers  int
	logLevel string
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	var opts options

	fs := flag.NewFlagSet("descli", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.BoolVar(&opts.encrypt, "e", false, "Режим шифрования")
	fs.BoolVar(&opts.decrypt, "d", false, "Режим дешифрования")
	fs.BoolVar(&opts.schedule, "s", false, "Вывести раундовые ключи")
	fs.StringVar(&opts.key, "k", "", "Ключ (1-32 ASCII символа), по умолчанию $"+keyEnv)
	fs.StringVar(&opts.key2, "k2", "", "Вторая часть ключа, объединяется с -k через хэш")
	fs.StringVar(&opts.hash, "hash", "sha256", "Хэш для объединения ключей: sha256, sha3, blake2b")
	fs.StringVar(&opts.padding, "p", "zeros", "Режим набивки: zeros, retain, pkcs7, ansi, iso")
	fs.BoolVar(&opts.parallel, "parallel", false, "Использовать параллельную обработку блоков")
	fs.IntVar(&opts.workers, "workers", 0, "Число потоков для -parallel (0 - по числу CPU)")
	fs.StringVar(&opts.logLevel, "log", "info", "Уровень логирования: debug, info, warn, error")

	if err := fs.Parse(args); err != nil {
		return exitUsage
	}

	logger, err := newLogger(opts.logLevel, stderr)
	if err != nil {
		fmt.Fprintf(stderr, "Ошибка: %v\n", err)
		return exitUsage
	}

	modes := 0
	for _, m := range []bool{opts.encrypt, opts.decrypt, opts.schedule} {
		if m {
			modes++
		}
	}
	if modes != 1 {
		fmt.Fprintln(stderr, "Использование:")
		fmt.Fprintln(stderr, "  Шифрование: descli -e -k=KEY input.txt output.hex")
		fmt.Fprintln(stderr, "  Дешифрование: descli -d -k=KEY input.hex output.txt")
		fmt.Fprintln(stderr, "  Раундовые ключи: descli -s -k=KEY")
		fmt.Fprintln(stderr, "\nФлаги:")
		fs.PrintDefaults()
		return exitUsage
	}

	key, err := resolveKey(opts)
	if err != nil {
		return reportError(stderr, "Ошибка работы с ключом", err)
	}

	if opts.schedule {
		return printSchedule(stdout, stderr, key)
	}

	paddingMode, err := parsePaddingMode(opts.padding)
	if err != nil {
		fmt.Fprintf(stderr, "Ошибка: %v\n", err)
		return exitUsage
	}

	workers := 1
	if opts.parallel {
		workers = opts.workers
		if workers <= 0 {
			workers = -1
		}
	}

	files := fs.Args()
	if len(files) != 2 {
		fmt.Fprintln(stderr, "Ошибка: необходимо указать входной и выходной файлы")
		return exitUsage
	}
	inputPath, outputPath := files[0], files[1]

	ctx, err := cripta.NewDESContext(key, paddingMode, workers)
	if err != nil {
		return reportError(stderr, "Ошибка создания контекста шифрования", err)
	}

	input, err := readInput(inputPath, stdin)
	if err != nil {
		fmt.Fprintf(stderr, "Ошибка чтения: %v\n", err)
		return exitUsage
	}

	startTime := time.Now()

	var output []byte
	op := "encrypt"
	if opts.encrypt {
		var ciphertext string
		ciphertext, err = ctx.EncryptText(string(input))
		output = []byte(ciphertext + "\n")
	} else {
		op = "decrypt"
		var plaintext string
		plaintext, err = ctx.DecryptText(string(bytes.TrimSpace(input)))
		output = []byte(plaintext)
	}
	if err != nil {
		logger.Debug("operation failed", "op", op, "err", err)
		return reportError(stderr, "Ошибка "+operationName(op), err)
	}

	logger.Info("done", "op", op, "in", len(input), "out", len(output),
		"padding", paddingMode, "workers", ctx.GetWorkers(), "elapsed", time.Since(startTime))

	if err := writeOutput(outputPath, stdout, output); err != nil {
		fmt.Fprintf(stderr, "Ошибка записи: %v\n", err)
		return exitUsage
	}

	if outputPath != "-" {
		if opts.encrypt {
			fmt.Fprintf(stdout, "Файл успешно зашифрован: %s -> %s\n", inputPath, outputPath)
		} else {
			fmt.Fprintf(stdout, "Файл успешно дешифрован: %s -> %s\n", inputPath, outputPath)
		}
	}

	return exitOK
}

// newLogger пишет logfmt в w, отбрасывая записи ниже level
func newLogger(level string, w io.Writer) (log.Logger, error) {
	lvl, err := log.LvlFromString(level)
	if err != nil {
		return nil, fmt.Errorf("неизвестный уровень логирования %q", level)
	}

	logger := log.New("app", "descli")
	logger.SetHandler(log.LvlFilterHandler(lvl, log.StreamHandler(w, log.LogfmtFormat())))
	return logger, nil
}

// resolveKey возвращает ключ из флагов или окружения, объединяя две части при наличии -k2
func resolveKey(opts options) (string, error) {
	key := opts.key
	if key == "" {
		key = os.Getenv(keyEnv)
	}

	if opts.key2 == "" {
		return key, nil
	}

	digest, err := keymerge.ParseDigest(opts.hash)
	if err != nil {
		return "", err
	}
	return keymerge.Merge(key, opts.key2, digest)
}

func printSchedule(stdout, stderr io.Writer, key string) int {
	if err := cripta.ValidateKey(key); err != nil {
		return reportError(stderr, "Ошибка работы с ключом", err)
	}

	keyWord, err := (&cripta.DESKeySchedule{}).FoldKey(key)
	if err != nil {
		return reportError(stderr, "Ошибка работы с ключом", err)
	}

	des, err := cripta.NewDESCipher()
	if err != nil {
		return reportError(stderr, "Ошибка создания шифра", err)
	}
	if err := des.SetKeyWord(keyWord); err != nil {
		return reportError(stderr, "Ошибка работы с ключом", err)
	}

	fmt.Fprintf(stdout, "KEY %016X\n", keyWord)
	for i, roundKey := range des.RoundKeys() {
		fmt.Fprintf(stdout, "K%02d %012X %s\n", i+1, roundKey, cripta.FormatBits(roundKey, 48, 6))
	}
	return exitOK
}

// parsePaddingMode преобразует строку в PaddingMode
func parsePaddingMode(padding string) (cripta.PaddingMode, error) {
	switch strings.ToLower(padding) {
	case "zeros":
		return cripta.PaddingModeZeros, nil
	case "retain":
		return cripta.PaddingModeZerosRetained, nil
	case "pkcs7":
		return cripta.PaddingModePKCS7, nil
	case "ansi":
		return cripta.PaddingModeANSIX923, nil
	case "iso":
		return cripta.PaddingModeISO10126, nil
	default:
		return 0, fmt.Errorf("неизвестный режим набивки: %s", padding)
	}
}

func operationName(op string) string {
	if op == "encrypt" {
		return "шифрования"
	}
	return "дешифрования"
}

// reportError печатает ошибку и выбирает код выхода по ее виду
func reportError(stderr io.Writer, prefix string, err error) int {
	fmt.Fprintf(stderr, "%s: %v\n", prefix, err)

	switch {
	case errors.Is(err, cripta.ErrValidation):
		return exitValidation
	case errors.Is(err, cripta.ErrFormat):
		return exitFormat
	case errors.Is(err, cripta.ErrDecode):
		return exitDecode
	default:
		return exitUsage
	}
}

func readInput(path string, stdin io.Reader) ([]byte, error) {
	if path == "-" {
		return io.ReadAll(stdin)
	}
	return os.ReadFile(path)
}

func writeOutput(path string, stdout io.Writer, data []byte) error {
	if path == "-" {
		_, err := stdout.Write(data)
		return err
	}
	return os.WriteFile(path, data, 0644)
}
