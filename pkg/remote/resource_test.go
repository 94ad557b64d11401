package remote

import (
	"testing"

	. "github.com/franela/goblin"
)

func newPendingObjectWithTestData(g *G) (*pendingObject, []byte) {
	resource := newPendingObject("bucket/test.bin")
	testData := []byte{0x1, 0x2, 0x3, 0x5, 0x6}

	n, err := resource.Write(testData)

	g.Assert(n).Equal(len(testData), "not all data was written to resource")
	g.Assert(err).IsNil("should not return any error while writing open resource")

	return &resource, testData
}

func TestPendingObject(t *testing.T) {
	g := Goblin(t)

	g.Describe("pendingObject", func() {
		g.It("Should return all written data on close", func() {
			resource, testData := newPendingObjectWithTestData(g)
			resource.Write([]byte{0x7})

			data, err := resource.Close()

			g.Assert(err).IsNil("should not return error when closing resource")
			g.Assert(data).Equal(append(testData, 0x7))
		})

		g.It("Write should return errResourceClosedForWriting when trying to write to closed resource", func() {
			resource, _ := newPendingObjectWithTestData(g)

			resource.Close()
			_, err := resource.Write([]byte{0x7, 0x8, 0x9})

			g.Assert(err).Equal(errResourceClosedForWriting)
		})

		g.It("Close should return errResourceAlreadyClosed when trying to close already closed resource", func() {
			resource, _ := newPendingObjectWithTestData(g)

			resource.Close()
			_, err := resource.Close()

			g.Assert(err).Equal(errResourceAlreadyClosed)
		})
	})
}
