// =============================================================================
// Seller Analytics - XML Report Writer
// =============================================================================
//
// XML STRUCTURE:
//
//   <?xml version="1.0" encoding="UTF-8"?>
//   <salesReport sellers="2">
//     <seller n="1">                       <!-- n is the rank, 1-based -->
//       <sellerId>seller_1</sellerId>
//       <name>Alexey Petrov</name>
//       <revenue>1200.5</revenue>
//       <profit>420</profit>
//       <salesCount>7</salesCount>
//       <topProducts>
//         <product n="1">
//           <sku>SKU_4</sku>
//           <quantity>5</quantity>
//         </product>
//       </topProducts>
//       <bonus>63</bonus>
//     </seller>
//   </salesReport>
//
// An empty topProducts list is written as a self-closing element.
//
// =============================================================================

package report

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"strconv"

	"github.com/ginjaninja78/seller-analytics/internal/types"
)

// Element names of the XML report.
const (
	XMLRootElement       = "salesReport"
	XMLSellerElement     = "seller"
	XMLTopProductsGroup  = "topProducts"
	XMLTopProductElement = "product"
	XMLIndexAttribute    = "n"
)

// XMLElement represents a generic XML element.
type XMLElement struct {
	XMLName    xml.Name
	Attributes []xml.Attr
	Value      string
	Children   []XMLElement
}

func writeXML(w io.Writer, reports []types.SellerReport) error {
	var buffer bytes.Buffer
	buffer.WriteString("<?xml version=\"1.0\" encoding=\"UTF-8\"?>\n")

	root := XMLElement{
		XMLName: xml.Name{Local: XMLRootElement},
		Attributes: []xml.Attr{
			{Name: xml.Name{Local: "sellers"}, Value: strconv.Itoa(len(reports))},
		},
	}
	for i, r := range reports {
		root.Children = append(root.Children, buildSellerElement(r, i+1))
	}

	writeElement(&buffer, root, "  ", 0)

	if _, err := w.Write(buffer.Bytes()); err != nil {
		return fmt.Errorf("failed to write XML report: %w", err)
	}
	return nil
}

// buildSellerElement constructs a seller element for the report at rank.
func buildSellerElement(r types.SellerReport, rank int) XMLElement {
	element := XMLElement{
		XMLName:    xml.Name{Local: XMLSellerElement},
		Attributes: []xml.Attr{indexAttr(rank)},
		Children: []XMLElement{
			createSimpleElement("sellerId", r.SellerID),
			createSimpleElement("name", r.Name),
			createSimpleElement("revenue", formatFloat(r.Revenue)),
			createSimpleElement("profit", formatFloat(r.Profit)),
			createSimpleElement("salesCount", strconv.Itoa(r.SalesCount)),
		},
	}

	products := XMLElement{XMLName: xml.Name{Local: XMLTopProductsGroup}}
	for i, p := range r.TopProducts {
		products.Children = append(products.Children, XMLElement{
			XMLName:    xml.Name{Local: XMLTopProductElement},
			Attributes: []xml.Attr{indexAttr(i + 1)},
			Children: []XMLElement{
				createSimpleElement("sku", p.SKU),
				createSimpleElement("quantity", formatFloat(p.Quantity)),
			},
		})
	}
	element.Children = append(element.Children, products)
	element.Children = append(element.Children, createSimpleElement("bonus", formatFloat(r.Bonus)))

	return element
}

// =============================================================================
// HELPER FUNCTIONS
// =============================================================================

func indexAttr(n int) xml.Attr {
	return xml.Attr{Name: xml.Name{Local: XMLIndexAttribute}, Value: strconv.Itoa(n)}
}

// createSimpleElement creates a simple XML element with a text value.
func createSimpleElement(name, value string) XMLElement {
	return XMLElement{
		XMLName: xml.Name{Local: name},
		Value:   value,
	}
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// writeElement writes an XML element to the buffer with indentation.
func writeElement(buffer *bytes.Buffer, element XMLElement, indent string, level int) {
	for i := 0; i < level; i++ {
		buffer.WriteString(indent)
	}

	buffer.WriteString("<")
	buffer.WriteString(element.XMLName.Local)
	for _, attr := range element.Attributes {
		fmt.Fprintf(buffer, " %s=\"%s\"", attr.Name.Local, escapeXML(attr.Value))
	}

	if len(element.Children) == 0 && element.Value == "" {
		buffer.WriteString("/>\n")
		return
	}

	buffer.WriteString(">")

	if element.Value != "" {
		buffer.WriteString(escapeXML(element.Value))
	} else {
		buffer.WriteString("\n")
		for _, child := range element.Children {
			writeElement(buffer, child, indent, level+1)
		}
		for i := 0; i < level; i++ {
			buffer.WriteString(indent)
		}
	}

	buffer.WriteString("</")
	buffer.WriteString(element.XMLName.Local)
	buffer.WriteString(">\n")
}

// escapeXML escapes special characters for XML.
func escapeXML(s string) string {
	var buffer bytes.Buffer
	if err := xml.EscapeText(&buffer, []byte(s)); err != nil {
		return s
	}
	return buffer.String()
}
