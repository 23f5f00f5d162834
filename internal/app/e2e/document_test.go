//go:build integration

package e2e

import (
	"bytes"
	"io"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/simoilconte/Bensine/internal/model"
	documentrepo "github.com/simoilconte/Bensine/internal/repository/document"
)

var _ = Describe("Document store", func() {
	It("streams back what was uploaded and forgets deleted files", func() {
		store := documentrepo.NewDocumentRepository(mongoC.Database(), documentsBucket)
		content := []byte("%PDF-1.4 libretto di circolazione")

		info, err := store.Upload(suiteCtx, model.UploadFileParams{
			Name:        "libretto.pdf",
			ContentType: "application/pdf",
			Body:        bytes.NewReader(content),
		})
		Expect(err).NotTo(HaveOccurred())
		Expect(info.Name).To(Equal("libretto.pdf"))
		Expect(info.ContentType).To(Equal("application/pdf"))
		Expect(info.Size).To(Equal(int64(len(content))))

		opened, err := store.Open(suiteCtx, info.ID)
		Expect(err).NotTo(HaveOccurred())
		body, err := io.ReadAll(opened.Body)
		Expect(err).NotTo(HaveOccurred())
		Expect(opened.Body.Close()).To(Succeed())
		Expect(body).To(Equal(content))

		Expect(store.Delete(suiteCtx, info.ID)).To(Succeed())

		_, err = store.Open(suiteCtx, info.ID)
		Expect(err).To(MatchError(model.ErrDocumentNotFound))
	})
})
