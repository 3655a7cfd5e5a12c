package catalog

// Category 商品分类实体
// 设计说明:
// 1. 数据来源于远端商城接口,本服务不拥有分类数据(只读视图)
// 2. Count为该分类下的商品数量,用于过滤空分类
type Category struct {
	ID       int    // 远端分类ID
	Name     string // 分类名称
	Slug     string // URL别名
	Count    int    // 分类下的商品数量
	ImageURL string // 分类封面图URL(可能为空)
}

// HasProducts 分类下是否有商品
// 业务规则:空分类不在首页展示
func (c *Category) HasProducts() bool {
	return c.Count > 0
}

// Product 商品实体(聚合根)
// 设计说明:
// 1. 价格字段保持远端接口返回的字符串形式(如"45.00")
//   - 远端接口以字符串传递金额,解析延迟到购物车计算时进行
//   - 解析失败按0处理,避免单个脏数据拖垮整个购物车
// 2. 本服务不拥有商品数据,Product是远端数据的只读视图
type Product struct {
	ID               int           // 远端商品ID
	Name             string        // 商品名称
	Slug             string        // URL别名
	Price            string        // 当前售价(字符串金额)
	RegularPrice     string        // 原价
	SalePrice        string        // 促销价(未促销时为空)
	OnSale           bool          // 是否促销中
	Description      string        // 详情描述(HTML)
	ShortDescription string        // 简介(HTML)
	StockStatus      string        // 库存状态(instock/outofstock)
	Images           []Image       // 商品图片列表
	Categories       []CategoryRef // 所属分类
}

// Image 商品图片
type Image struct {
	ID   int    // 远端图片ID
	Src  string // 图片URL
	Name string // 图片名称
}

// CategoryRef 商品所属分类的引用
// 只保存ID和名称,不嵌套完整Category(避免跨聚合引用)
type CategoryRef struct {
	ID   int
	Name string
	Slug string
}

// MainImage 商品主图URL
// 业务规则:取图片列表第一张,无图片时返回空字符串
func (p *Product) MainImage() string {
	if len(p.Images) == 0 {
		return ""
	}
	return p.Images[0].Src
}

// InStock 商品是否有库存
func (p *Product) InStock() bool {
	return p.StockStatus == "instock"
}
