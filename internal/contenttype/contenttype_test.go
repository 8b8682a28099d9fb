package contenttype_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/angeloszaimis/static-server/internal/contenttype"
)

var _ = Describe("Table", func() {
	var table contenttype.Table

	BeforeEach(func() {
		table = contenttype.Default()
	})

	DescribeTable("known extensions",
		func(ext string, expected contenttype.Type) {
			Expect(table.Lookup(ext)).To(Equal(expected))
			Expect(table.Supports(ext)).To(BeTrue())
		},
		Entry("html", "html", contenttype.Type("text/html")),
		Entry("css", "css", contenttype.Type("text/css")),
		Entry("js", "js", contenttype.Type("application/javascript")),
		Entry("png", "png", contenttype.Type("image/png")),
		Entry("jpg", "jpg", contenttype.Type("image/jpg")),
		Entry("jpeg", "jpeg", contenttype.Type("image/jpeg")),
		Entry("gif", "gif", contenttype.Type("image/gif")),
		Entry("json", "json", contenttype.Type("application/json")),
		Entry("xml", "xml", contenttype.Type("application/xml")),
	)

	It("should return Unsupported for unknown extensions", func() {
		Expect(table.Lookup("exe")).To(Equal(contenttype.Unsupported))
		Expect(table.Lookup("")).To(Equal(contenttype.Unsupported))
		Expect(table.Supports("txt")).To(BeFalse())
	})

	It("should match case-sensitively", func() {
		Expect(table.Lookup("PNG")).To(Equal(contenttype.Unsupported))
		Expect(table.Lookup("Html")).To(Equal(contenttype.Unsupported))
	})

	It("should not accept a leading dot", func() {
		Expect(table.Lookup(".html")).To(Equal(contenttype.Unsupported))
	})

	It("should list extensions sorted", func() {
		Expect(table.Extensions()).To(Equal([]string{
			"css", "gif", "html", "jpeg", "jpg", "js", "json", "png", "xml",
		}))
	})

	Describe("Type", func() {
		It("should report Unsupported as not supported", func() {
			Expect(contenttype.Unsupported.Supported()).To(BeFalse())
			Expect(contenttype.HTML.Supported()).To(BeTrue())
			Expect(contenttype.CSS.String()).To(Equal("text/css"))
		})
	})
})
