package parser

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"

	apperrors "github.com/harakeishi/conflo/internal/errors"
	"github.com/harakeishi/conflo/internal/logger"
	"github.com/harakeishi/conflo/pkg/types"
)

// YamlDecoder はYAMLベースのDecoder実装です。
// yaml.Node を直接走査することで、マッピングのキー出現順と重複キーを
// 失わずにドキュメントツリーへ変換します。
type YamlDecoder struct {
	logger logger.Logger
}

// NewYamlDecoder は新しいYamlDecoderを作成します。
func NewYamlDecoder(logger logger.Logger) *YamlDecoder {
	return &YamlDecoder{
		logger: logger,
	}
}

// Decode は生バイト列を単一のドキュメントツリーへ復号します。
func (d *YamlDecoder) Decode(ctx context.Context, data []byte) (types.Document, error) {
	return d.DecodeFromReader(ctx, bytes.NewReader(data))
}

// DecodeFromReader はリーダーからドキュメントを復号します。
func (d *YamlDecoder) DecodeFromReader(ctx context.Context, reader io.Reader) (types.Document, error) {
	decoder := yaml.NewDecoder(reader)

	var root yaml.Node
	if err := decoder.Decode(&root); err != nil {
		if errors.Is(err, io.EOF) {
			// 内容のないドキュメントはエラーではない
			d.logger.Debug(ctx, "空のドキュメントを復号しました")
			return nil, nil
		}
		return nil, apperrors.NewMalformedDocumentError(err)
	}

	// 2つ目のドキュメントが存在する場合は不正として拒否する
	var extra yaml.Node
	if err := decoder.Decode(&extra); !errors.Is(err, io.EOF) {
		return nil, apperrors.NewMalformedDocumentError(
			fmt.Errorf("複数ドキュメントの入力はサポートされていません"))
	}

	doc, err := d.convertNode(&root, map[*yaml.Node]bool{})
	if err != nil {
		return nil, err
	}

	d.logger.Debug(ctx, "ドキュメント復号完了")
	return doc, nil
}

// convertNode はyaml.Nodeをドキュメントツリーへ変換します。
// yaml.Node への復号では自己参照するアンカーが循環ノードグラフのまま
// 受理されるため、変換中のノード集合で循環を検出します。
func (d *YamlDecoder) convertNode(node *yaml.Node, visiting map[*yaml.Node]bool) (types.Document, error) {
	if visiting[node] {
		return nil, apperrors.NewMalformedDocumentError(
			fmt.Errorf("自己参照するエイリアスを検出しました (行 %d)", node.Line))
	}
	visiting[node] = true
	defer delete(visiting, node)

	switch node.Kind {
	case yaml.DocumentNode:
		if len(node.Content) == 0 {
			return nil, nil
		}
		return d.convertNode(node.Content[0], visiting)

	case yaml.MappingNode:
		mapping := types.NewMapping()
		for i := 0; i+1 < len(node.Content); i += 2 {
			keyNode := node.Content[i]
			valueNode := node.Content[i+1]

			key, err := d.scalarKey(keyNode)
			if err != nil {
				return nil, err
			}

			value, err := d.convertNode(valueNode, visiting)
			if err != nil {
				return nil, err
			}

			// 重複キーはここでは保持し、検出は上位レイヤーが行う
			mapping.Append(key, value)
		}
		return mapping, nil

	case yaml.SequenceNode:
		sequence := make([]types.Document, 0, len(node.Content))
		for _, item := range node.Content {
			value, err := d.convertNode(item, visiting)
			if err != nil {
				return nil, err
			}
			sequence = append(sequence, value)
		}
		return sequence, nil

	case yaml.ScalarNode:
		var value interface{}
		if err := node.Decode(&value); err != nil {
			return nil, apperrors.NewMalformedDocumentError(err)
		}
		return value, nil

	case yaml.AliasNode:
		return d.convertNode(node.Alias, visiting)

	default:
		return nil, apperrors.NewMalformedDocumentError(
			fmt.Errorf("サポートされていないノード種別です: %d (行 %d)", node.Kind, node.Line))
	}
}

// scalarKey はマッピングキーをスカラー文字列として取り出します。
func (d *YamlDecoder) scalarKey(node *yaml.Node) (string, error) {
	if node.Kind != yaml.ScalarNode {
		return "", apperrors.NewMalformedDocumentError(
			fmt.Errorf("マッピングキーはスカラーである必要があります (行 %d)", node.Line))
	}
	return strings.TrimSpace(node.Value), nil
}
