package selfupdate

import (
	"archive/tar"
	"archive/zip"
	"bufio"
	"bytes"
	"compress/gzip"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"runtime"
	"strings"
)

const binaryName = "asman"

var (
	ErrDevBuild      = errors.New("cannot update a development build")
	ErrAlreadyLatest = errors.New("already running the latest version")
	ErrChecksum      = errors.New("checksum verification failed")
)

type UpdateInput struct {
	CurrentVersion string
	TargetVersion  string // empty means the latest release
}

type UpdateProgress struct {
	Stage   string
	Message string
}

// install carries one update from release lookup to the swapped binary.
// Each stage fills in what the next one needs.
type install struct {
	c       *Checker
	current string
	tag     string
	asset   string
	archive []byte
	binary  []byte
}

type stage struct {
	name    string
	message func() string
	run     func(context.Context) error
}

func say(s string) func() string { return func() string { return s } }

// Update replaces the running binary with the release build for this
// platform, reporting each stage through progress.
func (c *Checker) Update(ctx context.Context, input *UpdateInput, progress func(UpdateProgress)) error {
	if input.CurrentVersion == "(devel)" {
		return ErrDevBuild
	}

	in := &install{c: c, current: input.CurrentVersion, tag: input.TargetVersion}
	var stages []stage
	if in.tag == "" {
		stages = append(stages, stage{"check", say("Checking for latest version..."), in.resolve})
	}
	stages = append(stages,
		stage{"download", func() string { return fmt.Sprintf("Downloading %s...", in.tag) }, in.download},
		stage{"verify", say("Verifying checksum..."), in.verify},
		stage{"extract", say("Extracting binary..."), in.extract},
		stage{"apply", say("Applying update..."), in.apply},
	)

	for _, s := range stages {
		progress(UpdateProgress{Stage: s.name, Message: s.message()})
		if err := s.run(ctx); err != nil {
			return err
		}
	}
	progress(UpdateProgress{Stage: "done", Message: fmt.Sprintf("Updated to %s", in.tag)})
	return nil
}

func (in *install) resolve(ctx context.Context) error {
	res, err := in.c.Check(ctx, &CheckInput{Version: in.current})
	if err != nil {
		return fmt.Errorf("check for updates: %w", err)
	}
	if !res.UpdateAvailable {
		return ErrAlreadyLatest
	}
	in.tag = res.LatestVersion
	return nil
}

func (in *install) download(ctx context.Context) error {
	asset, err := assetNameFor(runtime.GOOS, runtime.GOARCH)
	if err != nil {
		return err
	}
	in.asset = asset
	if in.archive, err = in.c.fetch(ctx, in.tag, asset); err != nil {
		return fmt.Errorf("download archive: %w", err)
	}
	return nil
}

func (in *install) verify(ctx context.Context) error {
	sums, err := in.c.fetch(ctx, in.tag, "checksums.txt")
	if err != nil {
		return fmt.Errorf("download checksums: %w", err)
	}
	want, ok := checksumFor(sums, in.asset)
	if !ok {
		return fmt.Errorf("no checksum found for %s in checksums.txt", in.asset)
	}
	return verifyChecksum(in.archive, want)
}

func (in *install) extract(context.Context) error {
	bin, err := extractBinary(in.archive, in.asset)
	if err != nil {
		return fmt.Errorf("extract binary: %w", err)
	}
	in.binary = bin
	return nil
}

func (in *install) apply(context.Context) error {
	target, err := in.c.execPath()
	if err != nil {
		return fmt.Errorf("resolve executable path: %w", err)
	}
	if err := replaceExecutable(target, in.binary); err != nil {
		return fmt.Errorf("apply update: %w", err)
	}
	return nil
}

// fetch downloads one file attached to the release tagged tag.
func (c *Checker) fetch(ctx context.Context, tag, file string) ([]byte, error) {
	url := fmt.Sprintf("%s/%s/%s/releases/download/%s/%s",
		strings.TrimRight(c.downloadBaseURL, "/"), c.owner, c.repo, tag, file)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	resp, err := c.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("HTTP %d for %s", resp.StatusCode, url)
	}
	return io.ReadAll(resp.Body)
}

// assetNameFor follows the goreleaser archive names, e.g.
// asman_Linux_x86_64.tar.gz or asman_Windows_arm64.zip.
func assetNameFor(goos, goarch string) (string, error) {
	if goos == "darwin" {
		return binaryName + "_Darwin_all.tar.gz", nil
	}

	arch := map[string]string{"amd64": "x86_64", "arm64": "arm64", "386": "i386"}[goarch]
	if arch == "" {
		return "", fmt.Errorf("unsupported architecture: %s", goarch)
	}
	switch goos {
	case "linux":
		return fmt.Sprintf("%s_Linux_%s.tar.gz", binaryName, arch), nil
	case "windows":
		return fmt.Sprintf("%s_Windows_%s.zip", binaryName, arch), nil
	}
	return "", fmt.Errorf("unsupported operating system: %s", goos)
}

// checksumFor finds the sha256 listed for file in a "<sha256>  <file>"
// checksums document.
func checksumFor(sums []byte, file string) (string, bool) {
	sc := bufio.NewScanner(bytes.NewReader(sums))
	for sc.Scan() {
		fields := strings.Fields(sc.Text())
		if len(fields) == 2 && fields[1] == file {
			return fields[0], true
		}
	}
	return "", false
}

func verifyChecksum(data []byte, wantHex string) error {
	h := sha256.Sum256(data)
	if got := hex.EncodeToString(h[:]); got != wantHex {
		return fmt.Errorf("%w: expected %s, got %s", ErrChecksum, wantHex, got)
	}
	return nil
}

// extractBinary pulls the asman executable out of a release archive.
// Windows releases are zip files holding asman.exe.
func extractBinary(archive []byte, asset string) ([]byte, error) {
	if strings.HasSuffix(asset, ".zip") {
		return fromZip(archive, binaryName+".exe")
	}
	return fromTarGz(archive, binaryName)
}

func fromTarGz(data []byte, name string) ([]byte, error) {
	gz, err := gzip.NewReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("open gzip: %w", err)
	}
	defer func() { _ = gz.Close() }()

	tr := tar.NewReader(gz)
	for {
		hdr, err := tr.Next()
		switch {
		case err == io.EOF:
			return nil, fmt.Errorf("binary %q not found in archive", name)
		case err != nil:
			return nil, fmt.Errorf("read tar: %w", err)
		case hdr.Typeflag == tar.TypeReg && filepath.Base(hdr.Name) == name:
			return io.ReadAll(tr)
		}
	}
}

func fromZip(data []byte, name string) ([]byte, error) {
	r, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("open zip: %w", err)
	}
	i := -1
	for j, f := range r.File {
		if filepath.Base(f.Name) == name {
			i = j
			break
		}
	}
	if i < 0 {
		return nil, fmt.Errorf("binary %q not found in archive", name)
	}

	rc, err := r.File[i].Open()
	if err != nil {
		return nil, err
	}
	defer func() { _ = rc.Close() }()
	return io.ReadAll(rc)
}

// replaceExecutable stages bin in a temp file beside target with target's
// mode, checks it reads back intact, then renames it over target.
func replaceExecutable(target string, bin []byte) error {
	info, err := os.Stat(target)
	if err != nil {
		return fmt.Errorf("stat target: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(target), "."+binaryName+"-update-*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	staged := tmp.Name()
	defer func() { _ = os.Remove(staged) }()

	_, err = tmp.Write(bin)
	if cerr := tmp.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := os.Chmod(staged, info.Mode().Perm()); err != nil {
		return fmt.Errorf("chmod: %w", err)
	}

	written, err := os.ReadFile(staged)
	if err != nil {
		return fmt.Errorf("re-read temp file: %w", err)
	}
	if !bytes.Equal(written, bin) {
		return fmt.Errorf("%w: staged file differs from the download", ErrChecksum)
	}

	if err := os.Rename(staged, target); err != nil {
		return fmt.Errorf("rename: %w", err)
	}
	return nil
}
