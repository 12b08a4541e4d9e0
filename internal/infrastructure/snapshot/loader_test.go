package snapshot_test

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
	"golang.org/x/text/encoding/charmap"

	"github.com/jhoicas/Inventario-reconciler/internal/domain"
	"github.com/jhoicas/Inventario-reconciler/internal/domain/entity"
	"github.com/jhoicas/Inventario-reconciler/internal/domain/reconciliation"
	"github.com/jhoicas/Inventario-reconciler/internal/infrastructure/snapshot"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadFile_MapeaColumnasYDetectaDecimales(t *testing.T) {
	path := writeFile(t, "snap.csv",
		"SKU,Product_Name,Qty,Warehouse,Updated_At,Supplier\n"+
			"sku001, Widget A ,77.00,Warehouse A,2024-01-15,ACME\n"+
			"SKU-002,Gadget,10,Warehouse B,01/15/2024,\n")

	loader := snapshot.NewLoader(snapshot.Options{}, nil)
	got, err := loader.LoadFile(context.Background(), path)
	require.NoError(t, err)

	assert.Equal(t, []string{"Product_Name", "Qty", "Warehouse", "Updated_At"}, got.Mapped)
	assert.Empty(t, got.Missing)
	assert.Equal(t, []string{"sku", "name", "quantity", "location", "last_counted", "supplier"}, got.Snapshot.Columns)
	require.Equal(t, 2, got.Snapshot.Len())

	first := got.Snapshot.Records[0]
	assert.Equal(t, "sku001", first.SKU)
	assert.Equal(t, " Widget A ", first.Name, "el cargador no recorta")
	assert.Equal(t, "ACME", first.Extra["supplier"])
	assert.Equal(t, map[int]string{0: "77.00"}, got.FloatQuantities)
}

func TestLoadFile_ColumnasFaltantes(t *testing.T) {
	path := writeFile(t, "snap.csv", "sku,name,location\nSKU-001,Widget,A\n")

	got, err := snapshot.NewLoader(snapshot.Options{}, nil).LoadFile(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, []string{"quantity", "last_counted"}, got.Missing)
}

func TestLoadFile_Vacio(t *testing.T) {
	for name, content := range map[string]string{
		"sin contenido":     "",
		"solo encabezado":   "sku,name,quantity,location,last_counted\n",
		"solo líneas vacías": "\n\n",
	} {
		t.Run(name, func(t *testing.T) {
			path := writeFile(t, "empty.csv", content)
			got, err := snapshot.NewLoader(snapshot.Options{}, nil).LoadFile(context.Background(), path)
			require.NoError(t, err)
			assert.True(t, got.Snapshot.Empty())
			assert.Equal(t, entity.CanonicalColumns, got.Missing)
			assert.Empty(t, got.Mapped)
		})
	}
}

func TestLoadReader_FilaSoloDelimitadoresConservaNumeracion(t *testing.T) {
	got, err := snapshot.NewLoader(snapshot.Options{}, nil).LoadReader(context.Background(), "snap.csv",
		strings.NewReader("sku,name,quantity,location,last_counted\n"+
			"SKU-001,Widget,10,Warehouse A,2024-01-10\n"+
			",,,,\n"+
			"\n"+
			"SKU-002,Gadget,-5.0,Warehouse A,2024-01-10\n"))
	require.NoError(t, err)

	require.Equal(t, 3, got.Snapshot.Len(), "la fila de delimitadores cuenta; la línea vacía no")
	assert.Equal(t, entity.RawRecord{}, got.Snapshot.Records[1])
	assert.Equal(t, "SKU-002", got.Snapshot.Records[2].SKU)
	assert.Equal(t, map[int]string{2: "-5.0"}, got.FloatQuantities)

	issues := reconciliation.CheckNegativeQuantities(got.Snapshot, entity.SourceSnapshot1)
	require.Len(t, issues, 1)
	require.NotNil(t, issues[0].RowNumber)
	assert.Equal(t, 3, *issues[0].RowNumber)
}

func TestLoadFile_NoExiste(t *testing.T) {
	_, err := snapshot.NewLoader(snapshot.Options{}, nil).
		LoadFile(context.Background(), filepath.Join(t.TempDir(), "nope.csv"))
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrSnapshotNotFound)
}

func TestLoadReader_BOMYCodificacion(t *testing.T) {
	loader := snapshot.NewLoader(snapshot.Options{}, nil)
	got, err := loader.LoadReader(context.Background(), "bom.csv",
		strings.NewReader("\xEF\xBB\xBFsku,name,quantity,location,last_counted\nSKU-001,Widget,1,A,2024-01-01\n"))
	require.NoError(t, err)
	assert.Empty(t, got.Missing, "el BOM no debe contaminar el primer encabezado")

	latin, err := charmap.ISO8859_1.NewEncoder().String("sku,name,quantity,location,last_counted\nSKU-001,Cañería,1,Bodega Sur,2024-01-01\n")
	require.NoError(t, err)
	got, err = snapshot.NewLoader(snapshot.Options{Encoding: snapshot.EncodingLatin1}, nil).
		LoadReader(context.Background(), "latin.csv", strings.NewReader(latin))
	require.NoError(t, err)
	assert.Equal(t, "Cañería", got.Snapshot.Records[0].Name)
}

func TestLoadReader_TSVYDelimitadorPersonalizado(t *testing.T) {
	got, err := snapshot.NewLoader(snapshot.Options{}, nil).LoadReader(context.Background(), "snap.tsv",
		strings.NewReader("sku\tname\tquantity\tlocation\tlast_counted\nSKU-001\tWidget, large\t3\tA\t2024-01-01\n"))
	require.NoError(t, err)
	assert.Equal(t, "Widget, large", got.Snapshot.Records[0].Name)

	got, err = snapshot.NewLoader(snapshot.Options{Delimiter: ';'}, nil).LoadReader(context.Background(), "snap.csv",
		strings.NewReader("sku;name;quantity;location;last_counted\nSKU-001;Widget;3,5;A;2024-01-01\n"))
	require.NoError(t, err)
	assert.Equal(t, "3,5", got.Snapshot.Records[0].Quantity)
	assert.Empty(t, got.FloatQuantities)
}

func TestLoadReader_FormatoNoSoportado(t *testing.T) {
	_, err := snapshot.NewLoader(snapshot.Options{}, nil).
		LoadReader(context.Background(), "snap.json", strings.NewReader("{}"))
	assert.ErrorIs(t, err, domain.ErrUnsupportedFormat)
}

func TestLoadReader_XLSX(t *testing.T) {
	f := excelize.NewFile()
	sheet := f.GetSheetName(0)
	require.NoError(t, f.SetSheetRow(sheet, "A1", &[]any{"SKU", "Product_Name", "Qty", "Warehouse", "Last_Counted"}))
	require.NoError(t, f.SetSheetRow(sheet, "A2", &[]any{"sku001", "Widget", "12.50", "Warehouse A", "2024-01-15"}))
	require.NoError(t, f.SetSheetRow(sheet, "A3", &[]any{"SKU-002", "Gadget", "4", "Warehouse B", "2024-01-16"}))
	var buf bytes.Buffer
	require.NoError(t, f.Write(&buf))
	require.NoError(t, f.Close())

	got, err := snapshot.NewLoader(snapshot.Options{}, nil).LoadReader(context.Background(), "snap.xlsx", &buf)
	require.NoError(t, err)
	assert.Empty(t, got.Missing)
	assert.Equal(t, []string{"Product_Name", "Qty", "Warehouse"}, got.Mapped)
	require.Equal(t, 2, got.Snapshot.Len())
	assert.Equal(t, "Warehouse B", got.Snapshot.Records[1].Location)
	assert.Equal(t, map[int]string{0: "12.50"}, got.FloatQuantities)
}

func TestLoadReader_ContextoCancelado(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := snapshot.NewLoader(snapshot.Options{}, nil).LoadReader(ctx, "a.csv", strings.NewReader("sku\n"))
	assert.ErrorIs(t, err, context.Canceled)
}
