package webutil

import (
	"log"
	"reflect"
	"strings"

	"github.com/go-playground/locales/zh" // 中国語ロケール
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	zh_translations "github.com/go-playground/validator/v10/translations/zh" // 中国語翻訳
)

// Validator はアプリケーション全体で共有されるバリデータインスタンスです。
var Validator *validator.Validate

// Trans はエラーメッセージを翻訳するためのトランスレータです。
var Trans ut.Translator

var fieldNameTranslations = map[string]string{
	"username":        "用户名",
	"email":           "邮箱",
	"password":        "密码",
	"confirmPassword": "确认密码",
	"code":            "验证码",
	"newPassword":     "新密码",
	"refreshToken":    "刷新令牌",
	"name":            "名称",
	"word":            "单词",
	"definition":      "释义",
	"wordIds":         "单词ID列表",
	"wordListId":      "词库ID",
	"mode":            "学习模式",
	"wordCount":       "单词数量",
	"studyGoal":       "学习目标",
	"isCorrect":       "回答结果",
	// ... 他のフィールドもここに追加 ...
}

func init() {
	// バリデータのインスタンスを生成
	Validator = validator.New()

	// JSONタグからフィールド名を取得するように設定
	Validator.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	// 中国語のロケールとトランスレータを設定
	chinese := zh.New()
	uni := ut.New(chinese, chinese)
	var found bool
	Trans, found = uni.GetTranslator("zh")
	if !found {
		log.Fatal("translator not found")
	}

	// バリデータに中国語の翻訳を登録
	if err := zh_translations.RegisterDefaultTranslations(Validator, Trans); err != nil {
		log.Fatal(err)
	}

	// 個別のエラーメッセージを上書き・カスタマイズ。
	// registerTranslation はメッセージテンプレートを登録するヘルパー関数
	registerTranslation := func(tag string, msg string) {
		Validator.RegisterTranslation(tag, Trans, func(ut ut.Translator) error {
			return ut.Add(tag, msg, true)
		}, func(ut ut.Translator, fe validator.FieldError) string {
			t, _ := ut.T(tag, translateFieldName(fe.Field()))
			return t
		})
	}

	registerTranslation("required", "{0}为必填项")
	registerTranslation("email", "{0}格式不正确")

	// min / max はパラメータ付きのテンプレートが必要
	Validator.RegisterTranslation("min", Trans, func(ut ut.Translator) error {
		return ut.Add("min", "{0}长度不能少于{1}个字符", true)
	}, func(ut ut.Translator, fe validator.FieldError) string {
		t, _ := ut.T("min", translateFieldName(fe.Field()), fe.Param())
		return t
	})

	Validator.RegisterTranslation("max", Trans, func(ut ut.Translator) error {
		return ut.Add("max", "{0}长度不能超过{1}个字符", true)
	}, func(ut ut.Translator, fe validator.FieldError) string {
		t, _ := ut.T("max", translateFieldName(fe.Field()), fe.Param())
		return t
	})

	Validator.RegisterTranslation("len", Trans, func(ut ut.Translator) error {
		return ut.Add("len", "{0}长度必须为{1}位", true)
	}, func(ut ut.Translator, fe validator.FieldError) string {
		t, _ := ut.T("len", translateFieldName(fe.Field()), fe.Param())
		return t
	})
}

// translateFieldName はjsonタグ名を中国語名に変換します。
// マップに無い場合は元のタグ名をそのまま使う。
func translateFieldName(fieldName string) string {
	if translated, ok := fieldNameTranslations[fieldName]; ok {
		return translated
	}
	return fieldName
}
