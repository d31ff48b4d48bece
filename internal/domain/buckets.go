package domain

// SchemaVersion is the current layout version of the store. Upgrades are
// additive: missing buckets are created, existing records are preserved.
const SchemaVersion = 1

// Bucket names for the two record collections and their secondary indices.
var (
	BucketMeta     = []byte("meta")
	BucketProducts = []byte("products")
	BucketSales    = []byte("sales")

	IdxProductName = []byte("idx_product_name")
	IdxProductQty  = []byte("idx_product_qty")
	IdxSaleProduct = []byte("idx_sale_product")
	IdxSaleDate    = []byte("idx_sale_date")
	IdxSaleName    = []byte("idx_sale_name")
)

// Buckets lists every bucket the store must carry, in creation order.
var Buckets = [][]byte{
	BucketMeta,
	BucketProducts,
	BucketSales,
	IdxProductName,
	IdxProductQty,
	IdxSaleProduct,
	IdxSaleDate,
	IdxSaleName,
}
