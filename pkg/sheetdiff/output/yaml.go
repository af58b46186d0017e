package output

import (
	"strconv"

	"github.com/ukaji3/sheetdiff-go/pkg/sheetdiff/models"
	"gopkg.in/yaml.v3"
)

// ToYAML serializes a workbook as YAML, keeping sheet, header and row
// order.
func ToYAML(wb *models.WorkbookData) ([]byte, error) {
	return yaml.Marshal(yamlNode(wb.Value()))
}

func yamlNode(v models.Value) *yaml.Node {
	switch v.Kind() {
	case models.KindBool:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!bool", Value: strconv.FormatBool(v.AsBool())}
	case models.KindNumber:
		tag := "!!float"
		if v.IsInteger() {
			tag = "!!int"
		}
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: tag, Value: v.String()}
	case models.KindString:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: v.AsString()}
	case models.KindArray:
		node := &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq"}
		for _, item := range v.Items() {
			node.Content = append(node.Content, yamlNode(item))
		}
		return node
	case models.KindObject:
		node := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
		for _, m := range v.Members() {
			key := &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: m.Key}
			node.Content = append(node.Content, key, yamlNode(m.Value))
		}
		return node
	}
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!null", Value: "null"}
}
