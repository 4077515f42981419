package resolver

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/harakeishi/conflo/pkg/types"
)

// EnvMarker は環境変数置換の開始を示すマーカー文字です。
const EnvMarker = '$'

// PathNormalizer はファイルパスベースのNormalizer実装です。
// 相対パスは基準ディレクトリからの絶対パスへ正規化します。
// マーカー文字で始まるパスセグメントは同名の環境変数の値に置換し、
// 未定義の場合はそのまま残します。
type PathNormalizer struct {
	baseDir string
	lookup  func(string) (string, bool)
}

// NewPathNormalizer は新しいPathNormalizerを作成します。
func NewPathNormalizer(baseDir string) *PathNormalizer {
	return &PathNormalizer{
		baseDir: baseDir,
		lookup:  os.LookupEnv,
	}
}

// NewPathNormalizerWithLookup は環境変数の参照関数を差し替えて作成します。
func NewPathNormalizerWithLookup(baseDir string, lookup func(string) (string, bool)) *PathNormalizer {
	return &PathNormalizer{
		baseDir: baseDir,
		lookup:  lookup,
	}
}

// Normalize は生の参照文字列を正規化済みReferenceへ変換します。
func (n *PathNormalizer) Normalize(raw string) (types.Reference, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return "", fmt.Errorf("参照が空です")
	}

	substituted, err := n.substitute(trimmed)
	if err != nil {
		return "", err
	}

	path := filepath.Clean(substituted)
	if !filepath.IsAbs(path) {
		path = filepath.Join(n.baseDir, path)
	}

	return types.Reference(path), nil
}

// substitute はパスセグメント単位で環境変数置換を行います。
func (n *PathNormalizer) substitute(path string) (string, error) {
	segments := strings.Split(filepath.ToSlash(path), "/")

	for i, segment := range segments {
		if len(segment) == 0 || segment[0] != EnvMarker {
			continue
		}

		name := segment[1:]
		if name == "" {
			return "", fmt.Errorf("環境変数名が空です: %s", path)
		}

		// 未定義の環境変数はそのまま残す
		if value, ok := n.lookup(name); ok {
			segments[i] = value
		}
	}

	return filepath.FromSlash(strings.Join(segments, "/")), nil
}
